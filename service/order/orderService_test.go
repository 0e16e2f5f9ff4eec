package order

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/arnold254/Kitabuzone/model"
)

type mockRepo struct {
	insertOrderFn func(ctx context.Context, tx *sql.Tx, userID string, total float64) (string, error)
	insertItemFn  func(ctx context.Context, tx *sql.Tx, orderID, bookID string, unitPrice float64) error
	listByUserFn  func(ctx context.Context, userID string) ([]model.Order, error)
	listAllFn     func(ctx context.Context) ([]model.Order, error)
}

func (m *mockRepo) InsertOrder(ctx context.Context, tx *sql.Tx, userID string, total float64) (string, error) {
	return m.insertOrderFn(ctx, tx, userID, total)
}
func (m *mockRepo) InsertItem(ctx context.Context, tx *sql.Tx, orderID, bookID string, unitPrice float64) error {
	return m.insertItemFn(ctx, tx, orderID, bookID, unitPrice)
}
func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	return m.listAllFn(ctx)
}

type mockRequests struct {
	lockFn   func(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error)
	updateFn func(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error)
}

func (m *mockRequests) LockApprovedPurchases(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error) {
	return m.lockFn(ctx, tx, userID)
}
func (m *mockRequests) UpdateStatus(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error) {
	return m.updateFn(ctx, tx, id, from, to, decidedBy, due)
}

func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func cartItem(id, bookID string, price float64) model.Request {
	return model.Request{
		ID: id, UserID: "user-1", BookID: bookID,
		Action: model.ActionPurchase, Status: model.StatusApproved,
		Book: &model.Book{ID: bookID, Title: "Book " + bookID, Price: price},
	}
}

func TestCheckout_Success(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	cart := []model.Request{
		cartItem("r1", "b1", 10),
		cartItem("r2", "b2", 25.5),
	}
	var itemRows []string
	repo := &mockRepo{
		insertOrderFn: func(ctx context.Context, tx *sql.Tx, userID string, total float64) (string, error) {
			require.Equal(t, "user-1", userID)
			require.InDelta(t, 35.5, total, 1e-9)
			return "ord-1", nil
		},
		insertItemFn: func(ctx context.Context, tx *sql.Tx, orderID, bookID string, unitPrice float64) error {
			require.Equal(t, "ord-1", orderID)
			itemRows = append(itemRows, bookID)
			return nil
		},
	}
	var moved []string
	reqs := &mockRequests{
		lockFn: func(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error) {
			return cart, nil
		},
		updateFn: func(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error) {
			require.Equal(t, model.StatusApproved, from)
			require.Equal(t, model.StatusPurchased, to)
			moved = append(moved, id)
			return true, nil
		},
	}

	svc := New(db, repo, reqs)
	out, err := svc.Checkout(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "ord-1", out.ID)
	require.Equal(t, model.OrderPaid, out.Status)
	require.InDelta(t, 35.5, out.TotalAmount, 1e-9)
	require.Len(t, out.Items, 2)
	require.Equal(t, []string{"b1", "b2"}, itemRows)
	require.Equal(t, []string{"r1", "r2"}, moved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_EmptyCart(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	reqs := &mockRequests{lockFn: func(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error) {
		return nil, nil
	}}
	svc := New(db, &mockRepo{}, reqs)

	_, err := svc.Checkout(context.Background(), "user-1")
	require.Equal(t, ErrCartEmpty, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_ConcurrentStatusChangeAborts(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &mockRepo{
		insertOrderFn: func(ctx context.Context, tx *sql.Tx, userID string, total float64) (string, error) {
			return "ord-1", nil
		},
		insertItemFn: func(ctx context.Context, tx *sql.Tx, orderID, bookID string, unitPrice float64) error {
			return nil
		},
	}
	reqs := &mockRequests{
		lockFn: func(ctx context.Context, tx *sql.Tx, userID string) ([]model.Request, error) {
			return []model.Request{cartItem("r1", "b1", 10)}, nil
		},
		updateFn: func(ctx context.Context, tx *sql.Tx, id string, from, to model.RequestStatus, decidedBy *string, due *time.Time) (bool, error) {
			return false, nil
		},
	}

	svc := New(db, repo, reqs)
	_, err := svc.Checkout(context.Background(), "user-1")
	require.Equal(t, ErrConflict, Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderListsDelegate(t *testing.T) {
	repo := &mockRepo{
		listByUserFn: func(ctx context.Context, userID string) ([]model.Order, error) {
			require.Equal(t, "user-1", userID)
			return []model.Order{{ID: "o1"}}, nil
		},
		listAllFn: func(ctx context.Context) ([]model.Order, error) {
			return []model.Order{{ID: "o1"}, {ID: "o2"}}, nil
		},
	}
	svc := New(nil, repo, &mockRequests{})

	mine, err := svc.MyOrders(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := svc.AllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}
