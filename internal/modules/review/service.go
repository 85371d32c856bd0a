package review

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/catalog"
	"github.com/glitzhand/glitzhand-backend/internal/modules/user"
)

// AuthorDirectory resolves the review author's display fields. Implemented by
// the user service.
type AuthorDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

// Service defines review business logic.
type Service interface {
	// Create persists a review for the authenticated author and attaches it
	// to the product. Fails with a not-found error if the product is absent.
	Create(ctx context.Context, authorID string, req CreateRequest) (*Review, error)

	ListByProduct(ctx context.Context, productID string) ([]*Review, error)

	// Update applies a partial edit. Only the author or an admin may edit.
	Update(ctx context.Context, id string, actorID string, actorAdmin bool, req UpdateRequest) (*Review, error)

	// Delete removes the review and detaches it from the owning product.
	// Only the author or an admin may delete.
	Delete(ctx context.Context, id string, actorID string, actorAdmin bool) error
}

// CreateRequest is the payload for posting a review.
type CreateRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid4"`
	Rating    int             `json:"rating" validate:"required,min=1,max=5"`
	Text      string          `json:"text" validate:"required"`
	Images    []catalog.Image `json:"images"`
}

// UpdateRequest is a partial review edit. Zero fields keep current values.
type UpdateRequest struct {
	Rating int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Text   string `json:"text"`
}

type service struct {
	repo     Repository
	authors  AuthorDirectory
	validate *validator.Validate
}

// NewService creates a new review service.
func NewService(repo Repository, authors AuthorDirectory) Service {
	return &service{repo: repo, authors: authors, validate: validator.New()}
}

func (s *service) Create(ctx context.Context, authorID string, req CreateRequest) (*Review, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}

	author, err := s.authors.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", req.ProductID, apperror.ErrValidation)
	}

	rev := &Review{
		ID:           uuid.New(),
		ProductID:    productID,
		UserID:       author.ID,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		Avatar:       author.Avatar,
		Rating:       req.Rating,
		Text:         req.Text,
		Images:       req.Images,
		DateReviewed: time.Now().UTC(),
	}

	if err := s.repo.CreateAndAttach(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) Update(ctx context.Context, id string, actorID string, actorAdmin bool, req UpdateRequest) (*Review, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}

	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorAdmin && rev.UserID.String() != actorID {
		return nil, fmt.Errorf("not your review: %w", apperror.ErrForbidden)
	}

	if req.Rating != 0 {
		rev.Rating = req.Rating
	}
	if req.Text != "" {
		rev.Text = req.Text
	}

	if err := s.repo.Update(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, actorAdmin bool) error {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actorAdmin && rev.UserID.String() != actorID {
		return fmt.Errorf("not your review: %w", apperror.ErrForbidden)
	}
	return s.repo.DeleteAndDetach(ctx, rev.ID.String())
}
