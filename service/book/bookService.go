package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arnold254/Kitabuzone/model"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, location model.BookLocation) ([]model.Book, error)
	Detail(ctx context.Context, id string) (*model.Book, error)
}

type Service interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, location model.BookLocation) ([]model.Book, error)
	Detail(ctx context.Context, id string) (*model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) error {
	if err := validate(b); err != nil {
		return err
	}
	return s.r.Create(ctx, b)
}

func (s *service) Update(ctx context.Context, b *model.Book) error {
	if err := validate(b); err != nil {
		return err
	}
	ok, err := s.r.Update(ctx, b)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) List(ctx context.Context, location model.BookLocation) ([]model.Book, error) {
	if location != "" && location != model.LocationStore && location != model.LocationLibrary {
		return nil, makeErr(ErrBadInput)
	}
	return s.r.List(ctx, location)
}

func (s *service) Detail(ctx context.Context, id string) (*model.Book, error) {
	b, err := s.r.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func validate(b *model.Book) error {
	if b.Title == "" || b.Price < 0 {
		return makeErr(ErrBadInput)
	}
	if b.Location != model.LocationStore && b.Location != model.LocationLibrary {
		return makeErr(ErrBadInput)
	}
	return nil
}
