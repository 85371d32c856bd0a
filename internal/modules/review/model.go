package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/modules/catalog"
)

// Review is a customer rating attached to a product. Author display fields
// are denormalized at write time so reviews survive account changes.
type Review struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product"`
	UserID       uuid.UUID       `json:"user"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName,omitempty"`
	Avatar       string          `json:"avatar,omitempty"`
	Rating       int             `json:"rating"`
	Text         string          `json:"text"`
	Images       []catalog.Image `json:"images,omitempty"`
	DateReviewed time.Time       `json:"dateReviewed"`
}
