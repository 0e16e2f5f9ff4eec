// model/request.go
package model

import "time"

type RequestAction string

const (
	ActionBorrow   RequestAction = "borrow"
	ActionPurchase RequestAction = "purchase"
)

type RequestStatus string

const (
	StatusPending       RequestStatus = "pending"
	StatusApproved      RequestStatus = "approved"
	StatusDeclined      RequestStatus = "declined"
	StatusCancelled     RequestStatus = "cancelled"
	StatusBorrowed      RequestStatus = "borrowed"
	StatusReturnPending RequestStatus = "return_pending"
	StatusReturned      RequestStatus = "returned"
	StatusPurchased     RequestStatus = "purchased"
)

// Request is a borrow or purchase intent moving through the approval
// lifecycle. Action is fixed at creation; only Status changes afterwards.
type Request struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	UserName     string        `json:"user"`
	BookID       string        `json:"book_id"`
	Book         *Book         `json:"book,omitempty"`
	Action       RequestAction `json:"action"`
	Status       RequestStatus `json:"status"`
	DurationDays *int          `json:"duration,omitempty"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	DecidedBy    *string       `json:"decided_by,omitempty"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
	ReturnedAt   *time.Time    `json:"returned_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty"`
}

// Terminal reports whether no further transition may leave s.
func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusDeclined, StatusCancelled, StatusReturned, StatusPurchased:
		return true
	}
	return false
}

// CreateRequestReq is the create-request payload.
// swagger:model CreateRequestReq
type CreateRequestReq struct {
	BookID   string        `json:"book_id" validate:"required,uuid4"`
	Action   RequestAction `json:"action" validate:"required,oneof=borrow purchase"`
	Duration *int          `json:"duration,omitempty" validate:"omitempty,gt=0,lte=90"`
}

// UpdateStatusReq carries a single status transition.
type UpdateStatusReq struct {
	Status RequestStatus `json:"status" validate:"required,oneof=pending approved declined cancelled borrowed return_pending returned purchased"`
}

// BatchStatusReq carries an admin bulk transition; all ids move
// atomically or none do.
type BatchStatusReq struct {
	IDs    []string      `json:"ids" validate:"required,min=1,dive,uuid4"`
	Status RequestStatus `json:"status" validate:"required,oneof=approved declined"`
}
