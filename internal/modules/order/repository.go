package order

import (
	"context"

	"github.com/google/uuid"
)

// ProductInfo is the catalog snapshot the composer prices an order from.
type ProductInfo struct {
	ID           uuid.UUID
	Name         string
	Price        float64
	Discount     float64
	CountInStock int
}

// Repository defines data access for orders.
type Repository interface {
	// GetProducts fetches the pricing snapshot for the given product ids.
	// Ids that do not resolve are simply absent from the returned map.
	GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ProductInfo, error)

	// CreateOrder persists the order and its items in one transaction,
	// reserving stock per line with a conditional decrement. A failed stock
	// guard aborts the whole transaction with an out-of-stock error; a
	// duplicate idempotency key aborts with a conflict error.
	CreateOrder(ctx context.Context, o *Order) error

	GetByID(ctx context.Context, id string) (*Order, error)

	// GetByIdempotencyKey returns the order a previous attempt with the same
	// key already created.
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*Order, error)

	// ListAll returns every order, optionally filtered by status, newest first.
	ListAll(ctx context.Context, status string) ([]*Order, error)

	// ListByUser returns the purchaser's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	UpdateStatus(ctx context.Context, id string, status Status) error

	// ReleaseStock returns reserved quantities to the catalog, used when an
	// order is cancelled before shipment.
	ReleaseStock(ctx context.Context, items []*OrderItem) error

	Delete(ctx context.Context, id string) error
}
