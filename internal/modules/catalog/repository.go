package catalog

import "context"

// Repository defines data access for categories and products.
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, p *Product) error
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListProducts(ctx context.Context, q ListQuery) (*ListResult, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Trending returns the top products by stock count.
	Trending(ctx context.Context, limit int) ([]*Product, error)

	// Featured returns the top in-stock products by discount.
	Featured(ctx context.Context, limit int) ([]*Product, error)

	// UpdateStock replaces the stock count. count must be >= 0.
	UpdateStock(ctx context.Context, id string, count int) (*Product, error)
}
