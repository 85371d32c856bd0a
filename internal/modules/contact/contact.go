package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message statuses follow the inquiry through triage.
const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
	StatusClosed  = "closed"
)

// Message is a contact-form inquiry.
type Message struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone,omitempty"`
	Body   string    `json:"message"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

// Repository defines data access for contact messages.
type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context) ([]*Message, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
