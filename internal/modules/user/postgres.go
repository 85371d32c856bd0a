package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, avatar, phone, role, addresses, cart, created_at`

func (r *postgresRepository) Create(ctx context.Context, u *User) error {
	addresses, cart, err := marshalEmbedded(u)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, avatar, phone, role, addresses, cart)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash,
		u.Avatar, u.Phone, u.Role, addresses, cart)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", u.Email, apperror.ErrConflict)
	}
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", id, apperror.ErrValidation)
	}
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, uid))
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *postgresRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := r.scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, u *User) error {
	addresses, cart, err := marshalEmbedded(u)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET first_name=$1, last_name=$2, avatar=$3, phone=$4, role=$5, addresses=$6, cart=$7
		WHERE id=$8`,
		u.FirstName, u.LastName, u.Avatar, u.Phone, u.Role, addresses, cart, u.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("user id %q: %w", id, apperror.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, uid)
	// Accounts with order history are kept; orders reference the purchaser row.
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %s has order history: %w", id, apperror.ErrConflict)
	}
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *postgresRepository) AddNotification(ctx context.Context, userID string, message string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("user id %q: %w", userID, apperror.ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, uid).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %s: %w", userID, apperror.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, message, status, created_at)
		VALUES ($1,$2,$3,$4,$5)`,
		uuid.New(), uid, message, NotificationUnread, time.Now().UTC()); err != nil {
		return err
	}

	// Keep only the most recent InboxCap entries.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM notifications
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)`, uid, InboxCap); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepository) NotifyAdmins(ctx context.Context, message string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, message, status, created_at)
		SELECT gen_random_uuid(), id, $1, $2, $3
		FROM users WHERE role = $4`,
		message, NotificationUnread, time.Now().UTC(), auth.RoleAdmin)
	return err
}

func (r *postgresRepository) ListNotifications(ctx context.Context, userID string) ([]*Notification, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", userID, apperror.ErrValidation)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, message, status, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Status, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *postgresRepository) MarkNotificationsRead(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("user id %q: %w", userID, apperror.ErrValidation)
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE notifications SET status = $1 WHERE user_id = $2`, NotificationRead, uid)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresRepository) scanUser(row *sql.Row) (*User, error) {
	u, err := r.scanUserRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", apperror.ErrNotFound)
	}
	return u, err
}

func (r *postgresRepository) scanUserRow(row rowScanner) (*User, error) {
	u := &User{}
	var addresses, cart []byte
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Avatar, &u.Phone, &u.Role, &addresses, &cart, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(addresses) > 0 {
		if err := json.Unmarshal(addresses, &u.Addresses); err != nil {
			return nil, fmt.Errorf("decode addresses: %w", err)
		}
	}
	if u.Addresses == nil {
		u.Addresses = []Address{}
	}
	if len(cart) > 0 {
		if err := json.Unmarshal(cart, &u.Cart); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}
	return u, nil
}

func marshalEmbedded(u *User) (addresses, cart []byte, err error) {
	if u.Addresses == nil {
		u.Addresses = []Address{}
	}
	if u.Cart == nil {
		u.Cart = []CartItem{}
	}
	addresses, err = json.Marshal(u.Addresses)
	if err != nil {
		return nil, nil, err
	}
	cart, err = json.Marshal(u.Cart)
	if err != nil {
		return nil, nil, err
	}
	return addresses, cart, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user: %w", apperror.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23503"
}
