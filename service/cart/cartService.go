// Package cart derives the borrowing cart, shopping cart and order
// history views. All three are filters over the request list; nothing
// here persists state of its own.
package cart

import (
	"context"
	"sort"

	"github.com/arnold254/Kitabuzone/model"
)

type Store interface {
	ListByUser(ctx context.Context, userID string) ([]model.Request, error)
}

type Service interface {
	BorrowingCart(ctx context.Context, userID string) ([]model.Request, error)
	ShoppingCart(ctx context.Context, userID string) ([]model.Request, error)
	OrderHistory(ctx context.Context, userID string) ([]model.Request, error)
}

type service struct{ store Store }

func New(store Store) Service { return &service{store: store} }

func (s *service) BorrowingCart(ctx context.Context, userID string) ([]model.Request, error) {
	reqs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterBorrowing(reqs), nil
}

func (s *service) ShoppingCart(ctx context.Context, userID string) ([]model.Request, error) {
	reqs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterShopping(reqs), nil
}

func (s *service) OrderHistory(ctx context.Context, userID string) ([]model.Request, error) {
	reqs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return SortNewestFirst(reqs), nil
}

// FilterBorrowing keeps approved or confirmed borrow requests.
func FilterBorrowing(reqs []model.Request) []model.Request {
	out := make([]model.Request, 0, len(reqs))
	for _, r := range reqs {
		if r.Action != model.ActionBorrow {
			continue
		}
		if r.Status != model.StatusApproved && r.Status != model.StatusBorrowed {
			continue
		}
		out = append(out, r)
	}
	return SortNewestFirst(out)
}

// FilterShopping keeps approved purchase requests awaiting checkout.
func FilterShopping(reqs []model.Request) []model.Request {
	out := make([]model.Request, 0, len(reqs))
	for _, r := range reqs {
		if r.Action == model.ActionPurchase && r.Status == model.StatusApproved {
			out = append(out, r)
		}
	}
	return SortNewestFirst(out)
}

// SortNewestFirst orders by created_at descending, id ascending on ties.
func SortNewestFirst(reqs []model.Request) []model.Request {
	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].ID < reqs[j].ID
		}
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
	return reqs
}
