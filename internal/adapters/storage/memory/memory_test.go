package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption/internal/domain/accounts"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepo_UniqueUsernameUnderRace(t *testing.T) {
	repo := NewAccountRepo()
	ctx := context.Background()

	var ok, conflicts int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, accounts.Account{Username: "alice", PasswordHash: "h"})
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, errs.ErrConflict):
				atomic.AddInt32(&conflicts, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(15), conflicts)
}

func TestRatingRepo_InsertIsAtomic(t *testing.T) {
	repo := NewRatingRepo()
	ctx := context.Background()

	var ok int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.Insert(ctx, ratings.Rating{Username: "u", TargetID: "t", Kind: ratings.KindPost}) == nil {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), ok)

	n, err := repo.Count(ctx, "t", ratings.KindPost)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// mismo target, otro kind: espacio independiente
	require.NoError(t, repo.Insert(ctx, ratings.Rating{Username: "u", TargetID: "t", Kind: ratings.KindComment}))
	n, err = repo.Count(ctx, "t", ratings.KindPost)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, "u", "t", ratings.KindPost))
	require.NoError(t, repo.Delete(ctx, "u", "t", ratings.KindPost))
	_, err = repo.Get(ctx, "u", "t", ratings.KindPost)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPetRepo_TransferOwnerConditional(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUsername: "user"}))

	changed, err := repo.TransferOwner(ctx, "p1", "someone-else", "bob")
	require.NoError(t, err)
	assert.False(t, changed, "stale owner must not modify the document")

	changed, err = repo.TransferOwner(ctx, "p1", "user", "bob")
	require.NoError(t, err)
	assert.True(t, changed)

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "bob", p.OwnerUsername)
	assert.Equal(t, []string{"user"}, p.PriorOwners)

	changed, err = repo.TransferOwner(ctx, "missing", "user", "bob")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestPetRepo_ReturnsCopies(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", OwnerUsername: "a", PriorOwners: []string{"x"}}))

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.PriorOwners[0] = "mutated"

	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, again.PriorOwners)
}

func TestPetRepo_ListFilter(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "1", Name: "Adam", Species: "dog", Age: 2, Zipcode: "07053", Tag: "funny", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "2", Name: "Joe", Species: "cat", Age: 1, Zipcode: "07946", Tag: "small", CreatedAt: base.Add(time.Hour)}))

	all, err := repo.List(ctx, pets.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID)

	one := 1
	cats, err := repo.List(ctx, pets.Filter{Species: "cat", Age: &one})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Joe", cats[0].Name)

	none, err := repo.List(ctx, pets.Filter{Species: "dog", Zipcode: "07946"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSessionRepo_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := newSessionRepo(func() time.Time { return now })
	ctx := context.Background()

	s, err := repo.Create(ctx, "alice", time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	now = now.Add(2 * time.Minute)
	_, err = repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = repo.Create(ctx, "alice", 0)
	assert.Error(t, err)
}

func TestSessionRepo_Delete(t *testing.T) {
	repo := NewSessionRepo()
	ctx := context.Background()

	s, err := repo.Create(ctx, "alice", time.Hour)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, s.ID))
	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err = repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
