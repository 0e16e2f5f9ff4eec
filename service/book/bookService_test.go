package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/arnold254/Kitabuzone/model"
	booksvc "github.com/arnold254/Kitabuzone/service/book"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) error
	updateFn func(ctx context.Context, b *model.Book) (bool, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
	listFn   func(ctx context.Context, location model.BookLocation) ([]model.Book, error)
	detailFn func(ctx context.Context, id string) (*model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) Update(ctx context.Context, b *model.Book) (bool, error) {
	return m.updateFn(ctx, b)
}
func (m *repoMock) Delete(ctx context.Context, id string) (bool, error) { return m.deleteFn(ctx, id) }
func (m *repoMock) List(ctx context.Context, location model.BookLocation) ([]model.Book, error) {
	return m.listFn(ctx, location)
}
func (m *repoMock) Detail(ctx context.Context, id string) (*model.Book, error) {
	return m.detailFn(ctx, id)
}

func validBook() *model.Book {
	return &model.Book{Title: "Clean Code", Author: "Martin", Price: 1800, Location: model.LocationStore}
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	ctx := context.Background()

	b := validBook()
	b.Title = ""
	if err := s.Create(ctx, b); booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("empty title: got %v; want BAD_INPUT", err)
	}
	b = validBook()
	b.Price = -1
	if err := s.Create(ctx, b); booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("negative price: got %v; want BAD_INPUT", err)
	}
	b = validBook()
	b.Location = "warehouse"
	if err := s.Create(ctx, b); booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("bad location: got %v; want BAD_INPUT", err)
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{createFn: func(ctx context.Context, b *model.Book) error {
		if b.Title != "Clean Code" {
			return errors.New("bad args")
		}
		b.ID = "b-42"
		return nil
	}}
	s := booksvc.New(m)

	b := validBook()
	if err := s.Create(context.Background(), b); err != nil || b.ID != "b-42" {
		t.Fatalf("got id=%q err=%v; want b-42 nil", b.ID, err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{updateFn: func(ctx context.Context, b *model.Book) (bool, error) { return false, nil }}
	s := booksvc.New(m)

	if err := s.Update(context.Background(), validBook()); booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want NOT_FOUND", err)
	}
}

func TestDelete(t *testing.T) {
	m := &repoMock{deleteFn: func(ctx context.Context, id string) (bool, error) { return id == "b1", nil }}
	s := booksvc.New(m)

	if err := s.Delete(context.Background(), "b1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(context.Background(), "ghost"); booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want NOT_FOUND", err)
	}
}

func TestList_LocationFilter(t *testing.T) {
	m := &repoMock{listFn: func(ctx context.Context, location model.BookLocation) ([]model.Book, error) {
		if location != model.LocationLibrary {
			t.Fatalf("location not passed through: %q", location)
		}
		return []model.Book{{ID: "b1"}}, nil
	}}
	s := booksvc.New(m)

	out, err := s.List(context.Background(), model.LocationLibrary)
	if err != nil || len(out) != 1 {
		t.Fatalf("got %v %v; want one row nil", out, err)
	}
	if _, err := s.List(context.Background(), "attic"); booksvc.Code(err) != booksvc.ErrBadInput {
		t.Fatalf("got %v; want BAD_INPUT", err)
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{detailFn: func(ctx context.Context, id string) (*model.Book, error) {
		return nil, sql.ErrNoRows
	}}
	s := booksvc.New(m)

	if _, err := s.Detail(context.Background(), "ghost"); booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("got %v; want NOT_FOUND", err)
	}
}
