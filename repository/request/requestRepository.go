// repository/request/requestRepository.go
package request

import (
	"context"
	"database/sql"
	"time"

	"github.com/arnold254/Kitabuzone/model"
)

const selectCols = `
	r.id, r.user_id, u.name, r.book_id, r.action, r.status,
	r.duration_days, r.due_date, r.decided_by, r.decided_at, r.returned_at,
	r.created_at, r.updated_at,
	b.id, b.title, b.author, b.genre, b.price, b.cover, b.location`

type Repo interface {
	Insert(ctx context.Context, r *model.Request) error
	ListAll(ctx context.Context) ([]model.Request, error)
	ListByUser(ctx context.Context, userID string) ([]model.Request, error)

	// GetForUpdate locks the row for the life of tx.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Request, error)

	// UpdateStatus commits one transition guarded on the prior status.
	// Returns false when a concurrent writer moved the row first.
	UpdateStatus(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error)

	// LockApprovedPurchases selects the user's checkout candidates FOR UPDATE.
	LockApprovedPurchases(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, req *model.Request) error {
	const q = `
		INSERT INTO pending_requests (user_id, book_id, action, status, duration_days)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		req.UserID, req.BookID, req.Action, req.Status, req.DurationDays,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *repo) ListAll(ctx context.Context) ([]model.Request, error) {
	const q = `
		SELECT ` + selectCols + `
		FROM pending_requests r
		JOIN users u ON u.id = r.user_id
		JOIN books b ON b.id = r.book_id
		ORDER BY r.created_at DESC, r.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]model.Request, error) {
	const q = `
		SELECT ` + selectCols + `
		FROM pending_requests r
		JOIN users u ON u.id = r.user_id
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Request, error) {
	const q = `
		SELECT id, user_id, book_id, action, status, duration_days, created_at
		FROM pending_requests
		WHERE id = $1
		FOR UPDATE`
	var req model.Request
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&req.ID, &req.UserID, &req.BookID, &req.Action, &req.Status,
		&req.DurationDays, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error) {
	const q = `
		UPDATE pending_requests
		SET status = $3,
			decided_by = COALESCE($4, decided_by),
			decided_at = CASE WHEN $4::uuid IS NULL THEN decided_at ELSE now() END,
			due_date   = COALESCE($5, due_date),
			returned_at = CASE WHEN $3 = 'returned' THEN now() ELSE returned_at END,
			updated_at = now()
		WHERE id = $1
		AND status = $2`
	res, err := tx.ExecContext(ctx, q, id, from, to, decidedBy, due)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}

func (r *repo) LockApprovedPurchases(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error) {
	const q = `
		SELECT r.id, r.user_id, r.book_id, r.status, b.title, b.price
		FROM pending_requests r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		AND r.action = 'purchase'
		AND r.status = 'approved'
		ORDER BY r.created_at DESC, r.id ASC
		FOR UPDATE OF r`
	rows, err := tx.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		var req model.Request
		b := &model.Book{}
		if err := rows.Scan(&req.ID, &req.UserID, &req.BookID, &req.Status, &b.Title, &b.Price); err != nil {
			return nil, err
		}
		req.Action = model.ActionPurchase
		b.ID = req.BookID
		req.Book = b
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanRequests(rows *sql.Rows) ([]model.Request, error) {
	var out []model.Request
	for rows.Next() {
		var req model.Request
		b := &model.Book{}
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.UserName, &req.BookID, &req.Action, &req.Status,
			&req.DurationDays, &req.DueDate, &req.DecidedBy, &req.DecidedAt, &req.ReturnedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&b.ID, &b.Title, &b.Author, &b.Genre, &b.Price, &b.Cover, &b.Location,
		); err != nil {
			return nil, err
		}
		req.Book = b
		out = append(out, req)
	}
	return out, rows.Err()
}
