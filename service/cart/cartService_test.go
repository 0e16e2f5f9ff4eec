package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arnold254/Kitabuzone/model"
)

type stubStore struct {
	reqs []model.Request
	err  error
}

func (s *stubStore) ListByUser(ctx context.Context, userID string) ([]model.Request, error) {
	return s.reqs, s.err
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func req(id string, action model.RequestAction, status model.RequestStatus, age time.Duration) model.Request {
	return model.Request{ID: id, Action: action, Status: status, CreatedAt: base.Add(-age)}
}

func ids(reqs []model.Request) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.ID
	}
	return out
}

func TestFilterBorrowing(t *testing.T) {
	in := []model.Request{
		req("r1", model.ActionBorrow, model.StatusApproved, 3*time.Hour),
		req("r2", model.ActionBorrow, model.StatusPending, 2*time.Hour),
		req("r3", model.ActionBorrow, model.StatusBorrowed, 1*time.Hour),
		req("r4", model.ActionPurchase, model.StatusApproved, 0),
		req("r5", model.ActionBorrow, model.StatusReturned, 4*time.Hour),
		req("r6", model.ActionBorrow, model.StatusReturnPending, 5*time.Hour),
	}
	got := FilterBorrowing(in)
	require.Equal(t, []string{"r3", "r1"}, ids(got))
}

func TestFilterShopping(t *testing.T) {
	in := []model.Request{
		req("r1", model.ActionPurchase, model.StatusApproved, 2*time.Hour),
		req("r2", model.ActionPurchase, model.StatusPending, 1*time.Hour),
		req("r3", model.ActionPurchase, model.StatusPurchased, 0),
		req("r4", model.ActionBorrow, model.StatusApproved, 3*time.Hour),
		req("r5", model.ActionPurchase, model.StatusDeclined, 4*time.Hour),
	}
	got := FilterShopping(in)
	require.Equal(t, []string{"r1"}, ids(got))
}

func TestFiltersOnEmptyInput(t *testing.T) {
	require.Empty(t, FilterBorrowing(nil))
	require.Empty(t, FilterShopping(nil))
}

func TestSortNewestFirst(t *testing.T) {
	in := []model.Request{
		req("r2", model.ActionBorrow, model.StatusPending, 2*time.Hour),
		req("r1", model.ActionBorrow, model.StatusPending, 1*time.Hour),
		req("r4", model.ActionBorrow, model.StatusPending, 0),
	}
	got := SortNewestFirst(in)
	require.Equal(t, []string{"r4", "r1", "r2"}, ids(got))
}

func TestSortNewestFirst_TieBreaksOnID(t *testing.T) {
	in := []model.Request{
		req("bbb", model.ActionBorrow, model.StatusPending, time.Hour),
		req("aaa", model.ActionBorrow, model.StatusPending, time.Hour),
		req("ccc", model.ActionBorrow, model.StatusPending, time.Hour),
	}
	got := SortNewestFirst(in)
	require.Equal(t, []string{"aaa", "bbb", "ccc"}, ids(got))
}

func TestOrderHistoryKeepsEverything(t *testing.T) {
	store := &stubStore{reqs: []model.Request{
		req("r1", model.ActionBorrow, model.StatusDeclined, 2*time.Hour),
		req("r2", model.ActionPurchase, model.StatusPurchased, time.Hour),
		req("r3", model.ActionBorrow, model.StatusCancelled, 0),
	}}
	svc := New(store)

	got, err := svc.OrderHistory(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, []string{"r3", "r2", "r1"}, ids(got))
}

func TestStoreErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	svc := New(&stubStore{err: boom})

	_, err := svc.BorrowingCart(context.Background(), "user-1")
	require.ErrorIs(t, err, boom)
	_, err = svc.ShoppingCart(context.Background(), "user-1")
	require.ErrorIs(t, err, boom)
	_, err = svc.OrderHistory(context.Background(), "user-1")
	require.ErrorIs(t, err, boom)
}
