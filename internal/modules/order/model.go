package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/modules/user"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPacked    Status = "packed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	StatusFinished  Status = "finished"
	StatusReturned  Status = "returned"
)

// validTransitions defines the allowed status state machine. Cancellation is
// only reachable before shipment; cancelled, finished and returned are
// terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusPacked, StatusCancelled},
	StatusPacked:    {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusReturned},
	StatusDelivered: {StatusFinished, StatusReturned},
	StatusCancelled: {},
	StatusFinished:  {},
	StatusReturned:  {},
}

// Known reports whether s is a recognized status value.
func (s Status) Known() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransition returns true if an order may move from current to next.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Fulfillment indicates how the order is handed over.
type Fulfillment string

const (
	FulfillmentDelivery Fulfillment = "delivery"
	FulfillmentPickup   Fulfillment = "pickup"
	FulfillmentPrepaid  Fulfillment = "prepaid"
)

// Order is a placed order. Total and the per-item prices are locked at
// creation time and never recomputed from the catalog.
type Order struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user"`
	OrderNumber    string       `json:"orderNumber"`
	Status         Status       `json:"status"`
	Fulfillment    Fulfillment  `json:"pickUpMethod"`
	Items          []*OrderItem `json:"products"`
	Total          float64      `json:"total"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName,omitempty"`
	Address        user.Address `json:"address"`
	IdempotencyKey string       `json:"-"`
	CreatedAt      time.Time    `json:"date"`
}

// OrderItem is a single line item. UnitPrice is price minus discount at
// purchase time, LineTotal is Quantity times UnitPrice.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"price"`
	LineTotal float64   `json:"total"`
}

// LineItemRequest is one requested (product, quantity) pair.
type LineItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	Items          []LineItemRequest `json:"products" validate:"required,min=1,dive"`
	Fulfillment    string            `json:"pickUpMethod" validate:"omitempty,oneof=delivery pickup prepaid"`
	Email          string            `json:"email" validate:"required,email"`
	Phone          string            `json:"phone" validate:"required"`
	FirstName      string            `json:"firstName" validate:"required"`
	LastName       string            `json:"lastName"`
	Address        user.Address      `json:"address"`
	IdempotencyKey string            `json:"idempotencyKey"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
