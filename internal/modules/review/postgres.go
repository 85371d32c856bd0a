package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/catalog"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const reviewColumns = `id, product_id, user_id, first_name, last_name, avatar, rating, body, images, date_reviewed`

func (r *postgresRepo) CreateAndAttach(ctx context.Context, rev *Review) error {
	images, err := marshalImages(rev.Images)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Appending to review_ids first takes the product row lock, so two
	// near-simultaneous reviews serialize instead of losing an append, and a
	// missing product aborts before anything is written.
	res, err := tx.ExecContext(ctx, `
		UPDATE products SET review_ids = array_append(review_ids, $1)
		WHERE id = $2`, rev.ID, rev.ProductID)
	if err != nil {
		return fmt.Errorf("attach review: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("product %s: %w", rev.ProductID, apperror.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reviews (`+reviewColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rev.ID, rev.ProductID, rev.UserID, rev.FirstName, rev.LastName,
		rev.Avatar, rev.Rating, rev.Text, images, rev.DateReviewed); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("review id %q: %w", id, apperror.ErrValidation)
	}
	rev, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, uid))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review %s: %w", id, apperror.ErrNotFound)
	}
	return rev, err
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", productID, apperror.ErrValidation)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, pid).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("product %s: %w", productID, apperror.ErrNotFound)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE product_id = $1
		ORDER BY date_reviewed DESC`, pid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, rev *Review) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = $1, body = $2 WHERE id = $3`,
		rev.Rating, rev.Text, rev.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("review %s: %w", rev.ID, apperror.ErrNotFound)
	}
	return nil
}

func (r *postgresRepo) DeleteAndDetach(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("review id %q: %w", id, apperror.ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var productID uuid.UUID
	err = tx.QueryRowContext(ctx,
		`DELETE FROM reviews WHERE id = $1 RETURNING product_id`, uid).Scan(&productID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("review %s: %w", id, apperror.ErrNotFound)
	}
	if err != nil {
		return err
	}

	// The product may already be gone; detaching from nothing is fine.
	if _, err := tx.ExecContext(ctx, `
		UPDATE products SET review_ids = array_remove(review_ids, $1)
		WHERE id = $2`, uid, productID); err != nil {
		return fmt.Errorf("detach review: %w", err)
	}

	return tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (*Review, error) {
	rev := &Review{}
	var images []byte
	err := row.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.FirstName,
		&rev.LastName, &rev.Avatar, &rev.Rating, &rev.Text, &images, &rev.DateReviewed)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &rev.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return rev, nil
}

func marshalImages(images []catalog.Image) ([]byte, error) {
	if images == nil {
		images = []catalog.Image{}
	}
	return json.Marshal(images)
}
