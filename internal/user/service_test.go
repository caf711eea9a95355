package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensio/expensio-backend/internal/apperr"
	"github.com/expensio/expensio-backend/internal/auth"
	"github.com/expensio/expensio-backend/internal/domain"
)

type fakeStore struct {
	rows map[uuid.UUID]*User

	lookupErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[uuid.UUID]*User)}
}

func (f *fakeStore) Insert(_ context.Context, u *User) error {
	u.ID = uuid.New()
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFoundf("user")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetByUsernameOrEmail(_ context.Context, ident string) (*User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, u := range f.rows {
		if u.Username == ident || u.Email == ident {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFoundf("user")
}

func (f *fakeStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.rows {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.rows {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T) (*Service, *fakeStore, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.NewTokens([]byte("test-secret-needs-32-bytes-min!!"), time.Hour)
	require.NoError(t, err)
	store := newFakeStore()
	return NewService(store, auth.NewHasher(4), tokens), store, tokens
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, store, _ := newTestService(t)

	u, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.True(t, u.IsActive)

	stored := store.rows[u.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "correct horse")
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := map[string]RegisterRequest{
		"missing username": {Email: "a@b.c", Password: "longenough"},
		"short username":   {Username: "ab", Email: "a@b.c", Password: "longenough"},
		"bad email":        {Username: "alice", Email: "not-an-email", Password: "longenough"},
		"short password":   {Username: "alice", Email: "a@b.c", Password: "short"},
	}
	for name, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

// Username and email collisions report distinct conflicts so the client can
// tell which field to fix.
func TestRegisterDistinctConflicts(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	req := validRegister()
	req.Email = "other@example.com"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperr.ErrUsernameTaken)

	req = validRegister()
	req.Username = "alice2"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	svc, _, tokens := newTestService(t)

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	for _, ident := range []string{"alice", "alice@example.com"} {
		resp, err := svc.Login(context.Background(), LoginRequest{UsernameOrEmail: ident, Password: "correct horse"})
		require.NoError(t, err, ident)
		require.NotEmpty(t, resp.Token)

		p, err := tokens.Validate(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, p.ID)
		assert.Equal(t, domain.RoleUser, p.Role)
	}
}

// Unknown identifier, wrong password and deactivated account are
// indistinguishable to the caller.
func TestLoginUniformFailure(t *testing.T) {
	svc, store, _ := newTestService(t)

	u, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{UsernameOrEmail: "nobody", Password: "correct horse"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.Login(context.Background(), LoginRequest{UsernameOrEmail: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	store.rows[u.ID].IsActive = false
	_, err = svc.Login(context.Background(), LoginRequest{UsernameOrEmail: "alice", Password: "correct horse"})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

// A repository outage during login is not a credential failure and must not
// hide behind the uniform 401.
func TestLoginPropagatesStoreErrors(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	store.lookupErr = errors.New("db down")
	_, err = svc.Login(context.Background(), LoginRequest{UsernameOrEmail: "alice", Password: "correct horse"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrUnauthenticated)
	assert.ErrorContains(t, err, "db down")
}

func TestMe(t *testing.T) {
	svc, _, _ := newTestService(t)

	u, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	got, err := svc.Me(context.Background(), auth.Principal{ID: u.ID, Role: u.Role})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.Me(context.Background(), auth.Principal{ID: uuid.New()})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
