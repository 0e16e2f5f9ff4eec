package request

import (
	"fmt"

	"github.com/arnold254/Kitabuzone/model"
)

// Actor is the authenticated caller attempting a transition.
type Actor struct {
	ID   string
	Role model.Role
}

func (a Actor) Admin() bool { return a.Role == model.RoleAdmin }

type edge struct {
	from, to model.RequestStatus
}

type rule struct {
	adminOnly bool
	ownerOnly bool
	action    model.RequestAction // empty = either action
}

// The full status graph. Anything not listed here is rejected,
// including re-entering the current status.
var transitions = map[edge]rule{
	{model.StatusPending, model.StatusApproved}:        {adminOnly: true},
	{model.StatusPending, model.StatusDeclined}:        {adminOnly: true},
	{model.StatusPending, model.StatusCancelled}:       {ownerOnly: true},
	{model.StatusApproved, model.StatusBorrowed}:       {ownerOnly: true, action: model.ActionBorrow},
	{model.StatusApproved, model.StatusPurchased}:      {ownerOnly: true, action: model.ActionPurchase},
	{model.StatusBorrowed, model.StatusReturnPending}:  {ownerOnly: true},
	{model.StatusReturnPending, model.StatusReturned}:  {adminOnly: true},
}

// CanTransition checks one edge of the status graph for the given
// actor. It returns ErrInvalidTransition for edges the graph does not
// contain and ErrForbidden/ErrNotOwner when the edge exists but the
// actor may not trigger it.
func CanTransition(req *model.Request, to model.RequestStatus, actor Actor) error {
	r, ok := transitions[edge{req.Status, to}]
	if !ok || (r.action != "" && r.action != req.Action) {
		return makeErrf(ErrInvalidTransition,
			"cannot transition %s request from %q to %q", req.Action, req.Status, to)
	}
	if r.adminOnly && !actor.Admin() {
		return makeErr(ErrForbidden)
	}
	if r.ownerOnly && actor.ID != req.UserID {
		// Admins do not get to trigger user-owned edges either; the
		// confirm/cancel steps belong to the requester alone.
		return makeErr(ErrNotOwner)
	}
	return nil
}

func makeErrf(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}
