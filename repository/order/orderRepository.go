// repository/order/orderRepository.go
package order

import (
	"context"
	"database/sql"

	"github.com/arnold254/Kitabuzone/model"
)

type Repo interface {
	InsertOrder(ctx context.Context, tx *sql.Tx, userID string, total float64) (string, error)
	InsertItem(ctx context.Context, tx *sql.Tx, orderID, bookID string, unitPrice float64) error
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InsertOrder(ctx context.Context, tx *sql.Tx, userID string, total float64) (string, error) {
	const q = `
		INSERT INTO orders (user_id, status, total_amount)
		VALUES ($1, 'PAID', $2)
		RETURNING id`
	var id string
	if err := tx.QueryRowContext(ctx, q, userID, total).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *repo) InsertItem(ctx context.Context, tx *sql.Tx, orderID, bookID string, unitPrice float64) error {
	const q = `
		INSERT INTO order_items (order_id, book_id, unit_price)
		VALUES ($1,$2,$3)`
	_, err := tx.ExecContext(ctx, q, orderID, bookID, unitPrice)
	return err
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const q = `
		SELECT id, user_id, status, total_amount, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := r.itemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *repo) ListAll(ctx context.Context) ([]model.Order, error) {
	const q = `
		SELECT id, user_id, status, total_amount, created_at
		FROM orders
		ORDER BY created_at DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *repo) itemsFor(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	const q = `
		SELECT i.id, i.order_id, i.book_id, b.title, i.unit_price
		FROM order_items i
		JOIN books b ON b.id = i.book_id
		WHERE i.order_id = $1`
	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.BookID, &it.Title, &it.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanOrders(rows *sql.Rows) ([]model.Order, error) {
	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
