package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/arnold254/Kitabuzone/model"
	"github.com/arnold254/Kitabuzone/util/hash"
	jwtutil "github.com/arnold254/Kitabuzone/util/jwt"
)

const secret = "test-secret"

type mockUsers struct {
	createFn         func(ctx context.Context, u *model.User) error
	byEmailFn        func(ctx context.Context, email string) (*model.User, error)
	byIDFn           func(ctx context.Context, id string) (*model.User, error)
	updatePasswordFn func(ctx context.Context, id, passwordHash string) error
}

func (m *mockUsers) Create(ctx context.Context, u *model.User) error { return m.createFn(ctx, u) }
func (m *mockUsers) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.byEmailFn(ctx, email)
}
func (m *mockUsers) ByID(ctx context.Context, id string) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockUsers) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.updatePasswordFn(ctx, id, passwordHash)
}

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)
	return &model.User{
		ID: "u1", Name: "Asha", Email: "asha@example.com",
		PasswordHash: hashed, Role: model.RoleCustomer, Status: model.UserActive,
	}
}

func TestRegister_Success(t *testing.T) {
	m := &mockUsers{createFn: func(ctx context.Context, u *model.User) error {
		require.Equal(t, "asha@example.com", u.Email)
		require.Equal(t, model.RoleCustomer, u.Role)
		require.Equal(t, model.UserActive, u.Status)
		require.NotEqual(t, "secret1", u.PasswordHash)
		u.ID = "u1"
		u.CreatedAt = time.Now().UTC()
		return nil
	}}
	svc := New(m, secret)

	u, token, err := svc.Register(context.Background(), model.RegisterReq{
		Name: " Asha ", Email: "ASHA@Example.com", Password: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ParseAuth(token, secret)
	require.NoError(t, err)
	require.Equal(t, "u1", claims["sub"])
	require.Equal(t, "customer", claims["role"])
}

func TestRegister_EmailTaken(t *testing.T) {
	m := &mockUsers{createFn: func(ctx context.Context, u *model.User) error {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}}
	svc := New(m, secret)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Name: "Asha", Email: "asha@example.com", Password: "secret1",
	})
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&mockUsers{}, secret)

	cases := []model.RegisterReq{
		{Name: "", Email: "a@b.com", Password: "secret1"},
		{Name: "Asha", Email: "", Password: "secret1"},
		{Name: "Asha", Email: "a@b.com", Password: "short"},
	}
	for _, c := range cases {
		_, _, err := svc.Register(context.Background(), c)
		require.Equal(t, ErrBadInput, Code(err))
	}
}

func TestCreateUser_RoleValidation(t *testing.T) {
	m := &mockUsers{createFn: func(ctx context.Context, u *model.User) error {
		u.ID = "u2"
		return nil
	}}
	svc := New(m, secret)

	u, err := svc.CreateUser(context.Background(), "Kim", "kim@example.com", "secret1", model.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, u.Role)

	_, err = svc.CreateUser(context.Background(), "Kim", "kim2@example.com", "secret1", model.Role("root"))
	require.Equal(t, ErrBadInput, Code(err))
}

func TestLogin_Success(t *testing.T) {
	u := activeUser(t, "secret1")
	m := &mockUsers{byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
		return u, nil
	}}
	svc := New(m, secret)

	got, token, err := svc.Login(context.Background(), model.LoginReq{Email: u.Email, Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	u := activeUser(t, "secret1")
	m := &mockUsers{byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
		return u, nil
	}}
	svc := New(m, secret)

	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: u.Email, Password: "nope-nope"})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	m := &mockUsers{byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
		return nil, sql.ErrNoRows
	}}
	svc := New(m, secret)

	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "ghost@example.com", Password: "secret1"})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_SuspendedUser(t *testing.T) {
	u := activeUser(t, "secret1")
	u.Status = model.UserSuspended
	m := &mockUsers{byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
		return u, nil
	}}
	svc := New(m, secret)

	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: u.Email, Password: "secret1"})
	require.Equal(t, ErrSuspended, Code(err))
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	u := activeUser(t, "secret1")
	var savedHash string
	m := &mockUsers{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) { return u, nil },
		byIDFn:    func(ctx context.Context, id string) (*model.User, error) { return u, nil },
		updatePasswordFn: func(ctx context.Context, id, passwordHash string) error {
			require.Equal(t, u.ID, id)
			savedHash = passwordHash
			return nil
		},
	}
	svc := New(m, secret)

	token, err := svc.RequestPasswordReset(context.Background(), u.Email)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "newsecret"))
	require.True(t, hash.Check(savedHash, "newsecret"))
}

func TestResetPassword_RejectsAuthToken(t *testing.T) {
	u := activeUser(t, "secret1")
	m := &mockUsers{byIDFn: func(ctx context.Context, id string) (*model.User, error) { return u, nil }}
	svc := New(m, secret)

	// A login token must not pass for a reset token.
	token, err := jwtutil.Issue(secret, u.ID, "customer", 1)
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), token, "newsecret")
	require.Equal(t, ErrBadToken, Code(err))
}

func TestResetPassword_ShortPassword(t *testing.T) {
	svc := New(&mockUsers{}, secret)
	err := svc.ResetPassword(context.Background(), "whatever", "tiny")
	require.Equal(t, ErrBadInput, Code(err))
}
