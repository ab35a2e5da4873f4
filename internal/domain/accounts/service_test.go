package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pet-adoption/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byUsername map[string]Account
}

func newTestRepo() *testRepo {
	return &testRepo{byUsername: map[string]Account{}}
}

func (r *testRepo) Create(_ context.Context, a Account) error {
	if _, ok := r.byUsername[a.Username]; ok {
		return errs.ErrConflict
	}
	r.byUsername[a.Username] = a
	return nil
}

func (r *testRepo) GetByUsername(_ context.Context, username string) (Account, error) {
	a, ok := r.byUsername[username]
	if !ok {
		return Account{}, errs.ErrNotFound
	}
	return a, nil
}

// newTestService evita bcrypt real: el "hash" es el password con prefijo.
func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.hash = func(p string) (string, error) { return "h:" + p, nil }
	svc.verify = func(p, h string) (bool, error) { return h == "h:"+p, nil }
	return svc, repo
}

func TestCreate_StoresHashNotPassword(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Create(context.Background(), "alice", "pw", Profile{Name: " Alice "})
	require.NoError(t, err)

	assert.Len(t, a.ID, 24)
	assert.Equal(t, "h:pw", repo.byUsername["alice"].PasswordHash)
	require.NotNil(t, a.Name)
	assert.Equal(t, "Alice", *a.Name)
	assert.Nil(t, a.Bio)
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "pw", Profile{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "alice", "other", Profile{})
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "user already exists")
}

func TestCreate_UsernamesAreCaseSensitive(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "pw", Profile{})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Alice", "pw", Profile{})
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, tc := range []struct{ user, pass string }{
		{"", "pw"},
		{"   ", "pw"},
		{"alice", ""},
	} {
		_, err := svc.Create(ctx, tc.user, tc.pass, Profile{})
		assert.ErrorIs(t, err, errs.ErrValidation, "%q/%q", tc.user, tc.pass)
	}
}

func TestCreate_RealHashRejectsLongPassword(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "alice", strings.Repeat("x", 73), Profile{})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestGet_MissingIsNil(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, a)

	ok, err := svc.Exists(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, "alice", "pw", Profile{})
	require.NoError(t, err)

	a, err := svc.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Username)

	_, errBadPass := svc.Authenticate(ctx, "alice", "nope")
	_, errNoUser := svc.Authenticate(ctx, "bob", "pw")
	assert.ErrorIs(t, errBadPass, errs.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, errs.ErrUnauthorized)
	// mismo mensaje para no revelar qué cuentas existen
	assert.Equal(t, errBadPass.Error(), errNoUser.Error())
}

func TestAuthenticate_MalformedStoredHashIsInternal(t *testing.T) {
	repo := newTestRepo()
	repo.byUsername["alice"] = Account{Username: "alice", PasswordHash: "not-bcrypt"}
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "alice", "pw")
	assert.True(t, errors.Is(err, errs.ErrInternal), "got %v", err)
}
