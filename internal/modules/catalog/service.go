package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

// ImageCleaner destroys stored assets by public id. Satisfied by the upload
// module's image gateway.
type ImageCleaner interface {
	Destroy(ctx context.Context, publicID string) error
}

// Service defines catalog business logic.
type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id string, req CreateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListProducts(ctx context.Context, q ListQuery) (*ListResult, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)

	// DeleteProduct removes the product and destroys its image assets at the
	// gateway. Gateway failures are logged, not surfaced: the product row is
	// already gone.
	DeleteProduct(ctx context.Context, id string) error

	Trending(ctx context.Context) ([]*Product, error)
	Featured(ctx context.Context) ([]*Product, error)
	UpdateStock(ctx context.Context, id string, count int) (*Product, error)
}

// CreateCategoryRequest holds the data for creating or replacing a category.
type CreateCategoryRequest struct {
	Name           string `json:"name" validate:"required"`
	ParentCategory string `json:"parentCategory"`
	Description    string `json:"description"`
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	Name         string      `json:"name" validate:"required"`
	Price        float64     `json:"price" validate:"gte=0"`
	Discount     float64     `json:"discount" validate:"gte=0"`
	Images       []Image     `json:"images" validate:"required,min=1"`
	Category     string      `json:"category" validate:"required,uuid4"`
	CountInStock int         `json:"countInStock" validate:"gte=0"`
	Description  Description `json:"description"`
}

// UpdateProductRequest is a partial product update. Nil/empty fields keep
// their current value.
type UpdateProductRequest struct {
	Name         string       `json:"name"`
	Price        *float64     `json:"price" validate:"omitempty,gte=0"`
	Discount     *float64     `json:"discount" validate:"omitempty,gte=0"`
	Images       []Image      `json:"images"`
	Category     string       `json:"category" validate:"omitempty,uuid4"`
	CountInStock *int         `json:"countInStock" validate:"omitempty,gte=0"`
	Description  *Description `json:"description"`
}

const spotlightCount = 6

type service struct {
	repo     Repository
	images   ImageCleaner
	validate *validator.Validate
}

// NewService creates a new catalog service.
func NewService(repo Repository, images ImageCleaner) Service {
	return &service{repo: repo, images: images, validate: validator.New()}
}

// ── categories ───────────────────────────────────────────────────────────────

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}
	c := &Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
	}
	if req.ParentCategory != "" {
		parent, err := s.repo.GetCategoryByID(ctx, req.ParentCategory)
		if err != nil {
			return nil, fmt.Errorf("parent category: %w", apperror.ErrValidation)
		}
		c.ParentID = &parent.ID
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetCategoryByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, id string, req CreateCategoryRequest) (*Category, error) {
	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		c.Name = req.Name
		c.Slug = slug.Make(req.Name)
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.ParentCategory != "" {
		parent, err := s.repo.GetCategoryByID(ctx, req.ParentCategory)
		if err != nil {
			return nil, fmt.Errorf("parent category: %w", apperror.ErrValidation)
		}
		c.ParentID = &parent.ID
	}
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

// ── products ─────────────────────────────────────────────────────────────────

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}

	category, err := s.repo.GetCategoryByID(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %w", apperror.ErrValidation)
	}

	p := &Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Slug:         slug.Make(req.Name),
		Price:        req.Price,
		Discount:     req.Discount,
		Images:       req.Images,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		CountInStock: req.CountInStock,
		Description:  req.Description,
		ReviewIDs:    []uuid.UUID{},
	}

	err = s.repo.CreateProduct(ctx, p)
	if errors.Is(err, apperror.ErrConflict) {
		// Same name already listed; disambiguate the slug and retry once.
		p.Slug = p.Slug + "-" + p.ID.String()[:6]
		err = s.repo.CreateProduct(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) GetProductBySlug(ctx context.Context, productSlug string) (*Product, error) {
	return s.repo.GetProductBySlug(ctx, productSlug)
}

func (s *service) ListProducts(ctx context.Context, q ListQuery) (*ListResult, error) {
	return s.repo.ListProducts(ctx, q)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}

	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
		p.Slug = slug.Make(req.Name)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Discount != nil {
		p.Discount = *req.Discount
	}
	if len(req.Images) > 0 {
		p.Images = req.Images
	}
	if req.Category != "" {
		category, err := s.repo.GetCategoryByID(ctx, req.Category)
		if err != nil {
			return nil, fmt.Errorf("invalid category ID: %w", apperror.ErrValidation)
		}
		p.CategoryID = category.ID
		p.CategoryName = category.Name
	}
	if req.CountInStock != nil {
		p.CountInStock = *req.CountInStock
	}
	if req.Description != nil {
		p.Description = *req.Description
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	for _, img := range p.Images {
		if img.PublicID == "" {
			continue
		}
		if err := s.images.Destroy(ctx, img.PublicID); err != nil {
			log.Printf("catalog: destroy image %s: %v", img.PublicID, err)
		}
	}
	return nil
}

func (s *service) Trending(ctx context.Context) ([]*Product, error) {
	return s.repo.Trending(ctx, spotlightCount)
}

func (s *service) Featured(ctx context.Context) ([]*Product, error) {
	return s.repo.Featured(ctx, spotlightCount)
}

func (s *service) UpdateStock(ctx context.Context, id string, count int) (*Product, error) {
	if count < 0 {
		return nil, fmt.Errorf("stock count must be a non-negative number: %w", apperror.ErrValidation)
	}
	return s.repo.UpdateStock(ctx, id, count)
}
