package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/arnold254/Kitabuzone/model"
)

type ErrCode string

const (
	ErrCartEmpty ErrCode = "CART_EMPTY"
	ErrConflict  ErrCode = "CONFLICT"
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
	InsertOrder(ctx context.Context, tx *sql.Tx, userID string, total float64) (string, error)
	InsertItem(ctx context.Context, tx *sql.Tx, orderID, bookID string, unitPrice float64) error
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
}

type Requests interface {
	LockApprovedPurchases(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error)
}

type Service interface {
	// Checkout snapshots the user's approved purchase requests into an
	// order and marks every one of them purchased, atomically.
	Checkout(ctx context.Context, userID string) (*model.Order, error)

	MyOrders(ctx context.Context, userID string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
}

type service struct {
	db   *sql.DB
	r    Repo
	reqs Requests
}

func New(db *sql.DB, r Repo, reqs Requests) Service {
	return &service{db: db, r: r, reqs: reqs}
}

func (s *service) Checkout(ctx context.Context, userID string) (out *model.Order, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cart, err := s.reqs.LockApprovedPurchases(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, makeErr(ErrCartEmpty)
	}

	var total float64
	for _, req := range cart {
		total += req.Book.Price
	}

	orderID, err := s.r.InsertOrder(ctx, tx, userID, total)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:          orderID,
		UserID:      userID,
		Status:      model.OrderPaid,
		TotalAmount: total,
	}
	for _, req := range cart {
		if err = s.r.InsertItem(ctx, tx, orderID, req.BookID, req.Book.Price); err != nil {
			return nil, err
		}
		var ok bool
		ok, err = s.reqs.UpdateStatus(ctx, tx, req.ID, model.StatusApproved, model.StatusPurchased, nil, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			err = makeErr(ErrConflict)
			return nil, err
		}
		order.Items = append(order.Items, model.OrderItem{
			OrderID:   orderID,
			BookID:    req.BookID,
			Title:     req.Book.Title,
			UnitPrice: req.Book.Price,
		})
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) MyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) AllOrders(ctx context.Context) ([]model.Order, error) {
	return s.r.ListAll(ctx)
}
