package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arnold254/Kitabuzone/model"
	"github.com/arnold254/Kitabuzone/notify"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound      ErrCode = "BOOK_NOT_FOUND"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrNotOwner          ErrCode = "NOT_OWNER"
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrBadInput          ErrCode = "BAD_INPUT"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
	ErrConflict          ErrCode = "CONFLICT"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const defaultLoanDays = 14

type Repo interface {
	Insert(ctx context.Context, r *model.Request) error
	ListAll(ctx context.Context) ([]model.Request, error)
	ListByUser(ctx context.Context, userID string) ([]model.Request, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Request, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error)
}

type Books interface {
	Detail(ctx context.Context, id string) (*model.Book, error)
}

type Logbook interface {
	Insert(ctx context.Context, userID, action, item string) error
}

type Service interface {
	// List mirrors the backend request list for the viewer: admins see
	// every request, customers only their own.
	List(ctx context.Context, actor Actor) ([]model.Request, error)

	// Create submits a new pending request.
	Create(ctx context.Context, actor Actor, req model.CreateRequestReq) (*model.Request, error)

	// SetStatus applies one lifecycle transition.
	SetStatus(ctx context.Context, actor Actor, requestID string, to model.RequestStatus) (*model.Request, error)

	// SetStatusBatch applies the same transition to several requests
	// in one transaction; either every id moves or none do.
	SetStatusBatch(ctx context.Context, actor Actor, ids []string, to model.RequestStatus) error

	// ConfirmBorrow is the approved -> borrowed convenience step.
	ConfirmBorrow(ctx context.Context, actor Actor, requestID string) (*model.Request, error)
}

type service struct {
	db    *sql.DB
	r     Repo
	books Books
	logs  Logbook
	hub   *notify.Hub
	log   *slog.Logger
}

func New(db *sql.DB, r Repo, books Books, logs Logbook, hub *notify.Hub, log *slog.Logger) Service {
	return &service{db: db, r: r, books: books, logs: logs, hub: hub, log: log}
}

func (s *service) List(ctx context.Context, actor Actor) ([]model.Request, error) {
	if actor.Admin() {
		return s.r.ListAll(ctx)
	}
	return s.r.ListByUser(ctx, actor.ID)
}

func (s *service) Create(ctx context.Context, actor Actor, in model.CreateRequestReq) (*model.Request, error) {
	if in.Action == model.ActionPurchase && in.Duration != nil {
		return nil, makeErrf(ErrBadInput, "duration only applies to borrow requests")
	}

	book, err := s.books.Detail(ctx, in.BookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound)
		}
		return nil, err
	}

	req := &model.Request{
		UserID:       actor.ID,
		BookID:       book.ID,
		Action:       in.Action,
		Status:       model.StatusPending,
		DurationDays: in.Duration,
	}
	if err := s.r.Insert(ctx, req); err != nil {
		return nil, err
	}
	req.Book = book
	return req, nil
}

func (s *service) SetStatus(ctx context.Context, actor Actor, requestID string, to model.RequestStatus) (req *model.Request, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	req, err = s.applyTx(ctx, tx, actor, requestID, to)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.afterCommit(ctx, actor, req, to)
	return req, nil
}

func (s *service) SetStatusBatch(ctx context.Context, actor Actor, ids []string, to model.RequestStatus) (err error) {
	if !actor.Admin() {
		return makeErr(ErrForbidden)
	}
	if len(ids) == 0 {
		return makeErr(ErrBadInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	moved := make([]*model.Request, 0, len(ids))
	for _, id := range ids {
		var req *model.Request
		req, err = s.applyTx(ctx, tx, actor, id, to)
		if err != nil {
			return err
		}
		moved = append(moved, req)
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	for _, req := range moved {
		s.afterCommit(ctx, actor, req, to)
	}
	return nil
}

func (s *service) ConfirmBorrow(ctx context.Context, actor Actor, requestID string) (*model.Request, error) {
	return s.SetStatus(ctx, actor, requestID, model.StatusBorrowed)
}

// applyTx does one locked read + legality check + guarded write inside
// the caller's transaction.
func (s *service) applyTx(ctx context.Context, tx *sql.Tx, actor Actor, requestID string, to model.RequestStatus) (*model.Request, error) {
	req, err := s.r.GetForUpdate(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	if err := CanTransition(req, to, actor); err != nil {
		return nil, err
	}

	var decidedBy *string
	if actor.Admin() {
		decidedBy = &actor.ID
	}
	var due *time.Time
	if to == model.StatusApproved && req.Action == model.ActionBorrow {
		days := defaultLoanDays
		if req.DurationDays != nil {
			days = *req.DurationDays
		}
		d := time.Now().UTC().AddDate(0, 0, days)
		due = &d
	}

	ok, err := s.r.UpdateStatus(ctx, tx, requestID, req.Status, to, decidedBy, due)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The row moved between our read and write; the other
		// transition committed first.
		return nil, makeErrf(ErrConflict, "request %s changed concurrently", requestID)
	}

	req.Status = to
	req.DecidedBy = decidedBy
	req.DueDate = due
	return req, nil
}

// afterCommit fires the cross-view refresh signal and the audit trail.
// Neither failure undoes the committed transition.
func (s *service) afterCommit(ctx context.Context, actor Actor, req *model.Request, to model.RequestStatus) {
	if to == model.StatusApproved && s.hub != nil {
		s.hub.Publish(notify.Approval{RequestID: req.ID, UserID: req.UserID})
	}
	if actor.Admin() && s.logs != nil {
		item := fmt.Sprintf("Request %s for book %s", req.ID, req.BookID)
		if err := s.logs.Insert(ctx, actor.ID, string(to), item); err != nil {
			s.log.Warn("activity log write failed", "err", err, "request_id", req.ID)
		}
	}
}
