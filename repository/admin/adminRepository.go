// repository/admin/adminRepository.go
package admin

import (
	"context"
	"database/sql"

	"github.com/arnold254/Kitabuzone/model"
)

type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalBooks      int64 `json:"totalBooks"`
	BorrowedBooks   int64 `json:"borrowedBooks"`
	PendingRequests int64 `json:"pendingRequests"`
}

type UserRow struct {
	model.User
	BorrowedCount int64 `json:"borrowed_count"`
}

type Repo interface {
	DashboardStats(ctx context.Context) (*Stats, error)
	ListUsers(ctx context.Context, search string, page, perPage int) ([]UserRow, int64, error)
	SetUserStatus(ctx context.Context, id string, status model.UserStatus) (bool, error)
	DeleteUser(ctx context.Context, id string) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) DashboardStats(ctx context.Context) (*Stats, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM pending_requests WHERE status = 'borrowed'),
			(SELECT COUNT(*) FROM pending_requests WHERE status = 'pending')`
	var s Stats
	err := r.db.QueryRowContext(ctx, q).Scan(
		&s.TotalUsers, &s.TotalBooks, &s.BorrowedBooks, &s.PendingRequests,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) ListUsers(ctx context.Context, search string, page, perPage int) ([]UserRow, int64, error) {
	pattern := "%" + search + "%"

	var total int64
	const countQ = `
		SELECT COUNT(*)
		FROM users
		WHERE name ILIKE $1 OR email ILIKE $1`
	if err := r.db.QueryRowContext(ctx, countQ, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Borrowed count derives from the request list, never from a
	// second list on the user row.
	const q = `
		SELECT u.id, u.name, u.email, u.role, u.status, u.created_at,
			COALESCE((
				SELECT COUNT(*) FROM pending_requests r
				WHERE r.user_id = u.id AND r.status = 'borrowed'
			), 0)
		FROM users u
		WHERE u.name ILIKE $1 OR u.email ILIKE $1
		ORDER BY u.created_at DESC, u.id ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, pattern, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []UserRow
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.CreatedAt, &u.BorrowedCount); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *repo) SetUserStatus(ctx context.Context, id string, status model.UserStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}

func (r *repo) DeleteUser(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}
