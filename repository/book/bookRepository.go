package book

import (
	"context"
	"database/sql"

	"github.com/arnold254/Kitabuzone/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, location model.BookLocation) ([]model.Book, error)
	Detail(ctx context.Context, id string) (*model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
		INSERT INTO books (title, author, genre, language, description, price, cover, location, available, uploaded_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Genre, b.Language, b.Description,
		b.Price, b.Cover, b.Location, b.Available, b.UploadedBy,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) Update(ctx context.Context, b *model.Book) (bool, error) {
	const q = `
		UPDATE books
		SET title=$2, author=$3, genre=$4, language=$5, description=$6,
			price=$7, cover=$8, location=$9, available=$10, updated_at=now()
		WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, b.Title, b.Author, b.Genre, b.Language, b.Description,
		b.Price, b.Cover, b.Location, b.Available,
	)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}

func (r *repo) List(ctx context.Context, location model.BookLocation) ([]model.Book, error) {
	q := `
		SELECT id, title, author, genre, language, description, price, cover, location, available, uploaded_by, created_at, updated_at
		FROM books`
	args := []any{}
	if location != "" {
		q += ` WHERE location = $1`
		args = append(args, location)
	}
	q += ` ORDER BY created_at DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Genre, &b.Language, &b.Description,
			&b.Price, &b.Cover, &b.Location, &b.Available, &b.UploadedBy,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id string) (*model.Book, error) {
	const q = `
		SELECT id, title, author, genre, language, description, price, cover, location, available, uploaded_by, created_at, updated_at
		FROM books
		WHERE id=$1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Genre, &b.Language, &b.Description,
		&b.Price, &b.Cover, &b.Location, &b.Available, &b.UploadedBy,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
