package newsletter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL newsletter repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Subscriber) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO newsletter_subscribers (id, email, is_active, subscribe_date)
		VALUES ($1, $2, $3, $4)`,
		s.ID, s.Email, s.IsActive, s.SubscribeDate)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return fmt.Errorf("email %s already subscribed: %w", s.Email, apperror.ErrConflict)
	}
	return err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, is_active, subscribe_date
		FROM newsletter_subscribers ORDER BY subscribe_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []*Subscriber{}
	for rows.Next() {
		s := &Subscriber{}
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribeDate); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}
