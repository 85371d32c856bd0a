package contact

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL contact repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, m *Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, phone, body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Name, m.Email, m.Phone, m.Body, m.Status, m.Date)
	return err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, body, status, created_at
		FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Body, &m.Status, &m.Date); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("message id %q: %w", id, apperror.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_messages SET status = $1 WHERE id = $2`, status, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("message %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
