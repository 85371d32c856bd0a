package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// ── categories ───────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, parent_id)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Slug, c.Description, c.ParentID)
	if isUniqueViolation(err) {
		return fmt.Errorf("category name %q: %w", c.Name, apperror.ErrConflict)
	}
	return err
}

func (r *postgresRepo) GetCategoryByID(ctx context.Context, id string) (*Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("category id %q: %w", id, apperror.ErrValidation)
	}
	c := &Category{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, parent_id, created_at
		FROM categories WHERE id = $1`, uid).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %s: %w", id, apperror.ErrNotFound)
	}
	return c, err
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, description, parent_id, created_at
		FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) UpdateCategory(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name=$1, slug=$2, description=$3, parent_id=$4
		WHERE id=$5`,
		c.Name, c.Slug, c.Description, c.ParentID, c.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("category name %q: %w", c.Name, apperror.ErrConflict)
	}
	if err != nil {
		return err
	}
	return requireAffected(res, "category")
}

func (r *postgresRepo) DeleteCategory(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("category id %q: %w", id, apperror.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	return requireAffected(res, "category")
}

// ── products ─────────────────────────────────────────────────────────────────

const productSelect = `
	SELECT p.id, p.name, p.slug, p.price, p.discount, p.images, p.category_id,
	       c.name, p.count_in_stock, p.description, p.review_ids, p.date_added
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	images, description, err := marshalProduct(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, slug, price, discount, images, category_id, count_in_stock, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Slug, p.Price, p.Discount, images, p.CategoryID, p.CountInStock, description)
	if isUniqueViolation(err) {
		return fmt.Errorf("product slug %q: %w", p.Slug, apperror.ErrConflict)
	}
	return err
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", id, apperror.ErrValidation)
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, uid))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", id, apperror.ErrNotFound)
	}
	return p, err
}

func (r *postgresRepo) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", slug, apperror.ErrNotFound)
	}
	return p, err
}

// sortColumns whitelists the sortable fields exposed by the list endpoint.
var sortColumns = map[string]string{
	"name":         "p.name",
	"price":        "p.price",
	"discount":     "p.discount",
	"countInStock": "p.count_in_stock",
	"dateAdded":    "p.date_added",
}

func (r *postgresRepo) ListProducts(ctx context.Context, q ListQuery) (*ListResult, error) {
	var where []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Category != "" {
		cid, err := uuid.Parse(q.Category)
		if err != nil {
			return nil, fmt.Errorf("category id %q: %w", q.Category, apperror.ErrValidation)
		}
		where = append(where, "p.category_id = "+arg(cid))
	}
	if q.MinPrice != nil {
		where = append(where, "p.price >= "+arg(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		where = append(where, "p.price <= "+arg(*q.MaxPrice))
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		where = append(where, "(p.name ILIKE "+arg(pattern)+" OR p.description->>'plainText' ILIKE "+arg(pattern)+")")
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products p`+clause, args...).Scan(&total); err != nil {
		return nil, err
	}

	order := "p.date_added DESC"
	if q.SortBy != "" {
		field, dir, _ := strings.Cut(q.SortBy, ":")
		col, ok := sortColumns[field]
		if !ok {
			return nil, fmt.Errorf("sort field %q: %w", field, apperror.ErrValidation)
		}
		order = col + " ASC"
		if dir == "desc" {
			order = col + " DESC"
		}
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := productSelect + clause +
		" ORDER BY " + order +
		" OFFSET " + arg((page-1)*limit) +
		" LIMIT " + arg(limit)

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &ListResult{
		Products:      products,
		TotalProducts: total,
		CurrentPage:   page,
		TotalPages:    totalPages,
	}, nil
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	images, description, err := marshalProduct(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, slug=$2, price=$3, discount=$4, images=$5, category_id=$6,
		    count_in_stock=$7, description=$8
		WHERE id=$9`,
		p.Name, p.Slug, p.Price, p.Discount, images, p.CategoryID,
		p.CountInStock, description, p.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "product")
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("product id %q: %w", id, apperror.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	return requireAffected(res, "product")
}

func (r *postgresRepo) Trending(ctx context.Context, limit int) ([]*Product, error) {
	return r.queryProducts(ctx, productSelect+` ORDER BY p.count_in_stock DESC LIMIT $1`, limit)
}

func (r *postgresRepo) Featured(ctx context.Context, limit int) ([]*Product, error) {
	return r.queryProducts(ctx,
		productSelect+` WHERE p.count_in_stock > 0 ORDER BY p.discount DESC LIMIT $1`, limit)
}

func (r *postgresRepo) UpdateStock(ctx context.Context, id string, count int) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", id, apperror.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET count_in_stock = $1 WHERE id = $2`, count, uid)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res, "product"); err != nil {
		return nil, err
	}
	return r.GetProductByID(ctx, id)
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	var images, description []byte
	var reviewIDs []string
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.Discount, &images,
		&p.CategoryID, &p.CategoryName, &p.CountInStock, &description,
		pq.Array(&reviewIDs), &p.DateAdded)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	if p.Images == nil {
		p.Images = []Image{}
	}
	if len(description) > 0 {
		if err := json.Unmarshal(description, &p.Description); err != nil {
			return nil, fmt.Errorf("decode description: %w", err)
		}
	}
	p.ReviewIDs = make([]uuid.UUID, 0, len(reviewIDs))
	for _, s := range reviewIDs {
		rid, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("review id %q: %w", s, err)
		}
		p.ReviewIDs = append(p.ReviewIDs, rid)
	}
	return p, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func marshalProduct(p *Product) (images, description []byte, err error) {
	if p.Images == nil {
		p.Images = []Image{}
	}
	images, err = json.Marshal(p.Images)
	if err != nil {
		return nil, nil, err
	}
	description, err = json.Marshal(p.Description)
	if err != nil {
		return nil, nil, err
	}
	return images, description, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, apperror.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
