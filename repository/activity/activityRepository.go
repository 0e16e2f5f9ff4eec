package activity

import (
	"context"
	"database/sql"

	"github.com/arnold254/Kitabuzone/model"
)

type Repo interface {
	Insert(ctx context.Context, userID, action, item string) error
	List(ctx context.Context) ([]model.ActivityLog, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, userID, action, item string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (user_id, action, item)
		VALUES ($1,$2,$3)`,
		userID, action, item)
	return err
}

func (r *repo) List(ctx context.Context) ([]model.ActivityLog, error) {
	const q = `
		SELECT id, user_id, action, item, created_at
		FROM activity_logs
		ORDER BY created_at DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ActivityLog
	for rows.Next() {
		var l model.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Item, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
