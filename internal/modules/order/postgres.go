package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*ProductInfo, error) {
	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, discount, count_in_stock
		FROM products WHERE id = ANY($1)`, pq.Array(strIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[uuid.UUID]*ProductInfo, len(ids))
	for rows.Next() {
		p := &ProductInfo{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Discount, &p.CountInStock); err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

// CreateOrder reserves stock and inserts the order and all its items inside a
// single transaction, so a failed guard or insert leaves nothing behind.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	address, err := json.Marshal(o.Address)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products SET count_in_stock = count_in_stock - $1
			WHERE id = $2 AND count_in_stock >= $1`,
			item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("product %s: %w", item.ProductID, apperror.ErrOutOfStock)
		}
	}

	var idempotencyKey interface{}
	if o.IdempotencyKey != "" {
		idempotencyKey = o.IdempotencyKey
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, user_id, order_number, status, fulfillment, total,
		   email, phone, first_name, last_name, address, idempotency_key, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		o.ID, o.UserID, o.OrderNumber, o.Status, o.Fulfillment, o.Total,
		o.Email, o.Phone, o.FirstName, o.LastName, address, idempotencyKey, o.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("idempotency key %q: %w", o.IdempotencyKey, apperror.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, quantity, unit_price, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			item.ID, o.ID, item.ProductID, item.Name,
			item.Quantity, item.UnitPrice, item.LineTotal); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

const orderSelect = `
	SELECT id, user_id, order_number, status, fulfillment, total,
	       email, phone, first_name, last_name, address, COALESCE(idempotency_key, ''), created_at
	FROM orders`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("order id %q: %w", id, apperror.ErrValidation)
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE id = $1`, uid))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", id, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) GetByIdempotencyKey(ctx context.Context, userID, key string) (*Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", userID, apperror.ErrValidation)
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		orderSelect+` WHERE user_id = $1 AND idempotency_key = $2`, uid, key))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order: %w", apperror.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListAll(ctx context.Context, status string) ([]*Order, error) {
	query := orderSelect
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", userID, apperror.ErrValidation)
	}
	return r.queryOrders(ctx, orderSelect+` WHERE user_id = $1 ORDER BY created_at DESC`, uid)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("order id %q: %w", id, apperror.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("order %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

func (r *postgresRepo) ReleaseStock(ctx context.Context, items []*OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		// The product may have been deleted since; nothing to release then.
		if _, err := tx.ExecContext(ctx, `
			UPDATE products SET count_in_stock = count_in_stock + $1
			WHERE id = $2`, item.Quantity, item.ProductID); err != nil {
			return fmt.Errorf("release stock: %w", err)
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("order id %q: %w", id, apperror.ErrValidation)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("order %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var address []byte
	err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.Fulfillment,
		&o.Total, &o.Email, &o.Phone, &o.FirstName, &o.LastName, &address,
		&o.IdempotencyKey, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &o.Address); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, quantity, unit_price, line_total
		FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*OrderItem{}
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
