package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

type fakeRepo struct {
	categories map[uuid.UUID]*Category
	products   map[uuid.UUID]*Product
	slugs      map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[uuid.UUID]*Category{},
		products:   map[uuid.UUID]*Product{},
		slugs:      map[string]bool{},
	}
}

func (r *fakeRepo) CreateCategory(_ context.Context, c *Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return fmt.Errorf("category name %q: %w", c.Name, apperror.ErrConflict)
		}
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) GetCategoryByID(_ context.Context, id string) (*Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("category id: %w", apperror.ErrValidation)
	}
	c, ok := r.categories[uid]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, apperror.ErrNotFound)
	}
	return c, nil
}

func (r *fakeRepo) ListCategories(_ context.Context) ([]*Category, error) {
	out := []*Category{}
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) UpdateCategory(_ context.Context, c *Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return fmt.Errorf("category: %w", apperror.ErrNotFound)
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) DeleteCategory(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("category id: %w", apperror.ErrValidation)
	}
	if _, ok := r.categories[uid]; !ok {
		return fmt.Errorf("category: %w", apperror.ErrNotFound)
	}
	delete(r.categories, uid)
	return nil
}

func (r *fakeRepo) CreateProduct(_ context.Context, p *Product) error {
	if r.slugs[p.Slug] {
		return fmt.Errorf("product slug %q: %w", p.Slug, apperror.ErrConflict)
	}
	r.slugs[p.Slug] = true
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) GetProductByID(_ context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("product id: %w", apperror.ErrValidation)
	}
	p, ok := r.products[uid]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, apperror.ErrNotFound)
	}
	return p, nil
}

func (r *fakeRepo) GetProductBySlug(_ context.Context, slug string) (*Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", slug, apperror.ErrNotFound)
}

func (r *fakeRepo) ListProducts(_ context.Context, q ListQuery) (*ListResult, error) {
	out := []*Product{}
	for _, p := range r.products {
		out = append(out, p)
	}
	return &ListResult{Products: out, TotalProducts: len(out), CurrentPage: 1, TotalPages: 1}, nil
}

func (r *fakeRepo) UpdateProduct(_ context.Context, p *Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return fmt.Errorf("product: %w", apperror.ErrNotFound)
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) DeleteProduct(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("product id: %w", apperror.ErrValidation)
	}
	p, ok := r.products[uid]
	if !ok {
		return fmt.Errorf("product: %w", apperror.ErrNotFound)
	}
	delete(r.slugs, p.Slug)
	delete(r.products, uid)
	return nil
}

func (r *fakeRepo) Trending(_ context.Context, limit int) ([]*Product, error) {
	return nil, nil
}

func (r *fakeRepo) Featured(_ context.Context, limit int) ([]*Product, error) {
	return nil, nil
}

func (r *fakeRepo) UpdateStock(_ context.Context, id string, count int) (*Product, error) {
	p, err := r.GetProductByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	p.CountInStock = count
	return p, nil
}

type fakeCleaner struct {
	destroyed []string
	fail      bool
}

func (c *fakeCleaner) Destroy(_ context.Context, publicID string) error {
	if c.fail {
		return fmt.Errorf("gateway down: %w", apperror.ErrUpstream)
	}
	c.destroyed = append(c.destroyed, publicID)
	return nil
}

func seedCategory(t *testing.T, svc Service, name string) *Category {
	t.Helper()
	c, err := svc.CreateCategory(context.Background(), CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c
}

func productRequest(categoryID string) CreateProductRequest {
	return CreateProductRequest{
		Name:         "Woven Bracelet",
		Price:        150,
		Discount:     25,
		Images:       []Image{{URL: "https://cdn.example.com/a.jpg", PublicID: "images/a"}},
		Category:     categoryID,
		CountInStock: 12,
	}
}

func TestCreateCategorySlugAndConflict(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCleaner{})

	c := seedCategory(t, svc, "Sweat-Shirts")
	assert.Equal(t, "sweat-shirts", c.Slug)

	_, err := svc.CreateCategory(context.Background(), CreateCategoryRequest{Name: "Sweat-Shirts"})
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCreateCategoryResolvesParent(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCleaner{})
	parent := seedCategory(t, svc, "Jewellery")

	child, err := svc.CreateCategory(context.Background(), CreateCategoryRequest{
		Name: "Rings", ParentCategory: parent.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	_, err = svc.CreateCategory(context.Background(), CreateCategoryRequest{
		Name: "Orphans", ParentCategory: uuid.New().String(),
	})
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateProductRequiresValidCategory(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCleaner{})

	_, err := svc.CreateProduct(context.Background(), productRequest(uuid.New().String()))
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCreateProductDisambiguatesSlugOnConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeCleaner{})
	category := seedCategory(t, svc, "Bracelets")

	first, err := svc.CreateProduct(context.Background(), productRequest(category.ID.String()))
	require.NoError(t, err)
	assert.Equal(t, "woven-bracelet", first.Slug)

	second, err := svc.CreateProduct(context.Background(), productRequest(category.ID.String()))
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "woven-bracelet-")
	assert.Len(t, repo.products, 2)
}

func TestCreateProductRequiresImage(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCleaner{})
	category := seedCategory(t, svc, "Bracelets")

	req := productRequest(category.ID.String())
	req.Images = nil
	_, err := svc.CreateProduct(context.Background(), req)
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestDeleteProductDestroysImages(t *testing.T) {
	repo := newFakeRepo()
	cleaner := &fakeCleaner{}
	svc := NewService(repo, cleaner)
	category := seedCategory(t, svc, "Bracelets")

	p, err := svc.CreateProduct(context.Background(), productRequest(category.ID.String()))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID.String()))
	assert.Empty(t, repo.products)
	assert.Equal(t, []string{"images/a"}, cleaner.destroyed)
}

func TestDeleteProductSurvivesGatewayFailure(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeCleaner{fail: true})
	category := seedCategory(t, svc, "Bracelets")

	p, err := svc.CreateProduct(context.Background(), productRequest(category.ID.String()))
	require.NoError(t, err)

	// The row is gone even when asset cleanup fails.
	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID.String()))
	assert.Empty(t, repo.products)
}

func TestUpdateStockRejectsNegative(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeCleaner{})
	category := seedCategory(t, svc, "Bracelets")

	p, err := svc.CreateProduct(context.Background(), productRequest(category.ID.String()))
	require.NoError(t, err)

	_, err = svc.UpdateStock(context.Background(), p.ID.String(), -1)
	require.ErrorIs(t, err, apperror.ErrValidation)

	updated, err := svc.UpdateStock(context.Background(), p.ID.String(), 40)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.CountInStock)
}

func TestUpdateProductPartialEdit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeCleaner{})
	category := seedCategory(t, svc, "Bracelets")

	p, err := svc.CreateProduct(context.Background(), productRequest(category.ID.String()))
	require.NoError(t, err)

	price := 199.0
	updated, err := svc.UpdateProduct(context.Background(), p.ID.String(),
		UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 199.0, updated.Price)
	assert.Equal(t, "Woven Bracelet", updated.Name)
	assert.Equal(t, 25.0, updated.Discount)
}
