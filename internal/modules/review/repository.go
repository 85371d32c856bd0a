package review

import "context"

// Repository defines data access for reviews. The product/review relationship
// is bidirectional (review row + the product's review_ids list); CreateAndAttach
// and DeleteAndDetach are the only mutation sites, so no caller can update one
// side and forget the other.
type Repository interface {
	// CreateAndAttach persists the review and appends its id to the owning
	// product's review list in one transaction. Fails with a not-found error
	// if the product is absent; nothing is written in that case.
	CreateAndAttach(ctx context.Context, rev *Review) error

	GetByID(ctx context.Context, id string) (*Review, error)

	// ListByProduct returns all reviews for a product, newest first. Fails
	// with a not-found error if the product is absent.
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)

	Update(ctx context.Context, rev *Review) error

	// DeleteAndDetach removes the review and its reference from the owning
	// product. A product deleted independently is tolerated: the review is
	// still removed.
	DeleteAndDetach(ctx context.Context, id string) error
}
