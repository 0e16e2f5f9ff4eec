package adminsvc

import (
	"context"
	"errors"

	"github.com/arnold254/Kitabuzone/model"
	adminrepo "github.com/arnold254/Kitabuzone/repository/admin"
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

type UserPage struct {
	Users []adminrepo.UserRow `json:"users"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
}

type Logs interface {
	List(ctx context.Context) ([]model.ActivityLog, error)
}

type Service interface {
	Dashboard(ctx context.Context) (*adminrepo.Stats, error)
	ListUsers(ctx context.Context, search string, page, perPage int) (*UserPage, error)
	SetUserStatus(ctx context.Context, id string, status model.UserStatus) error
	DeleteUser(ctx context.Context, id string) error
	ActivityLogs(ctx context.Context) ([]model.ActivityLog, error)
	LogActions() []string
}

type service struct {
	r    adminrepo.Repo
	logs Logs
}

func New(r adminrepo.Repo, logs Logs) Service { return &service{r: r, logs: logs} }

func (s *service) Dashboard(ctx context.Context) (*adminrepo.Stats, error) {
	return s.r.DashboardStats(ctx)
}

func (s *service) ListUsers(ctx context.Context, search string, page, perPage int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	users, total, err := s.r.ListUsers(ctx, search, page, perPage)
	if err != nil {
		return nil, err
	}
	return &UserPage{Users: users, Total: total, Page: page}, nil
}

func (s *service) SetUserStatus(ctx context.Context, id string, status model.UserStatus) error {
	if status != model.UserActive && status != model.UserSuspended {
		return makeErr(ErrBadInput)
	}
	ok, err := s.r.SetUserStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) DeleteUser(ctx context.Context, id string) error {
	ok, err := s.r.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) ActivityLogs(ctx context.Context) ([]model.ActivityLog, error) {
	return s.logs.List(ctx)
}

func (s *service) LogActions() []string {
	return []string{"approved", "declined", "returned"}
}
