package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arnold254/Kitabuzone/model"
	authrepo "github.com/arnold254/Kitabuzone/repository/auth"
	"github.com/arnold254/Kitabuzone/util/hash"
	jwtutil "github.com/arnold254/Kitabuzone/util/jwt"
)

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrInvalidCreds ErrCode = "INVALID_CREDS"
	ErrSuspended    ErrCode = "SUSPENDED"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrBadToken     ErrCode = "BAD_TOKEN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
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

const resetTokenTTL = 30 * time.Minute

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)

	// CreateUser is the admin path: role is caller-chosen.
	CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)

	// RequestPasswordReset issues a short-lived reset token. In
	// production the token travels by email; it is returned here and
	// the controller decides what to expose.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	ur     authrepo.Repo
	secret string
}

func New(ur authrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	u, err := s.create(ctx, req.Name, req.Email, req.Password, model.RoleCustomer)
	if err != nil {
		return nil, "", err
	}
	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	if role != model.RoleCustomer && role != model.RoleAdmin {
		return nil, makeErr(ErrBadInput)
	}
	return s.create(ctx, name, email, password, role)
}

func (s *service) create(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 6 {
		return nil, makeErr(ErrBadInput)
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		Status:       model.UserActive,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, makeErr(ErrEmailTaken)
		}
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput)
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	if u.Status == model.UserSuspended {
		return nil, "", makeErr(ErrSuspended)
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.ur.ByEmail(ctx, email)
	if err != nil || u == nil {
		return "", makeErr(ErrNotFound)
	}
	return jwtutil.IssueReset(s.secret, u.ID, resetTokenTTL)
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 6 {
		return makeErr(ErrBadInput)
	}
	userID, err := jwtutil.ParseReset(token, s.secret)
	if err != nil {
		return makeErr(ErrBadToken)
	}
	if _, err := s.ur.ByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrBadToken)
		}
		return err
	}
	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.ur.UpdatePassword(ctx, userID, hashed)
}
