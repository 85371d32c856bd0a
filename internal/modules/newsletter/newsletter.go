package newsletter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Subscriber is one newsletter signup.
type Subscriber struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	IsActive      bool      `json:"isActive"`
	SubscribeDate time.Time `json:"subscribeDate"`
}

// Repository defines data access for newsletter subscribers.
type Repository interface {
	// Create persists a new subscriber. A duplicate email yields a conflict
	// error.
	Create(ctx context.Context, s *Subscriber) error
	List(ctx context.Context) ([]*Subscriber, error)
}
