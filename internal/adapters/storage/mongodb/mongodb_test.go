package mongodb

import (
	"context"
	"errors"
	"testing"

	"pet-adoption/internal/domain/accounts"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestAccountsRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("create ok", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewAccountsRepo(mt.DB)

		err := repo.Create(ctx, accounts.Account{ID: primitive.NewObjectID().Hex(), Username: "ana", PasswordHash: "h"})
		require.NoError(mt, err)
	})

	mt.Run("duplicate username is conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: account index: username_unique",
		}))
		repo := NewAccountsRepo(mt.DB)

		err := repo.Create(ctx, accounts.Account{ID: primitive.NewObjectID().Hex(), Username: "ana", PasswordHash: "h"})
		assert.True(mt, errors.Is(err, errs.ErrConflict))
	})

	mt.Run("get by username maps fields", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+CollAccounts, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "ana"},
			{Key: "hashpass", Value: "$2a$10$hash"},
		}))
		repo := NewAccountsRepo(mt.DB)

		a, err := repo.GetByUsername(ctx, "ana")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), a.ID)
		assert.Equal(mt, "$2a$10$hash", a.PasswordHash)
		assert.Nil(mt, a.Name)
	})

	mt.Run("missing username is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+CollAccounts, mtest.FirstBatch))
		repo := NewAccountsRepo(mt.DB)

		_, err := repo.GetByUsername(ctx, "nadie")
		assert.True(mt, errors.Is(err, errs.ErrNotFound))
	})
}

func TestPetsRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("get decodes document and defaults prior owners", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+CollPets, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "user"},
			{Key: "animalName", Value: "Adam"},
			{Key: "animalType", Value: "Dog"},
			{Key: "animalAge", Value: int32(3)},
			{Key: "zipcode", Value: "92101"},
		}))
		repo := NewPetsRepo(mt.DB)

		p, err := repo.GetByID(ctx, oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Adam", p.Name)
		assert.Equal(mt, 3, p.Age)
		assert.Equal(mt, "user", p.OwnerUsername)
		assert.NotNil(mt, p.PriorOwners)
		assert.Empty(mt, p.PriorOwners)
	})

	mt.Run("malformed id is not found without a round trip", func(mt *mtest.T) {
		repo := NewPetsRepo(mt.DB)

		_, err := repo.GetByID(ctx, "not-an-id")
		assert.True(mt, errors.Is(err, errs.ErrNotFound))
	})

	mt.Run("transfer reports modified document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewPetsRepo(mt.DB)

		ok, err := repo.TransferOwner(ctx, primitive.NewObjectID().Hex(), "user", "user1")
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("transfer with stale owner modifies nothing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewPetsRepo(mt.DB)

		ok, err := repo.TransferOwner(ctx, primitive.NewObjectID().Hex(), "user", "user1")
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("list decodes every document", func(mt *mtest.T) {
		ns := "test." + CollPets
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "animalName", Value: "Adam"}, {Key: "priorOwners", Value: bson.A{"user1"}}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "animalName", Value: "Joe"}},
		))
		repo := NewPetsRepo(mt.DB)

		out, err := repo.List(ctx, pets.Filter{Species: "Dog"})
		require.NoError(mt, err)
		require.Len(mt, out, 2)
		assert.Equal(mt, []string{"user1"}, out[0].PriorOwners)
		assert.Equal(mt, "Joe", out[1].Name)
	})
}

func TestFilterDoc(t *testing.T) {
	age := 4
	q := filterDoc(pets.Filter{Name: "Joe", Age: &age, Zipcode: "92101"})

	assert.Equal(t, bson.M{"animalName": "Joe", "animalAge": 4, "zipcode": "92101"}, q)
	assert.Empty(t, filterDoc(pets.Filter{}))
}

func TestRatingsRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("second like is conflict", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: ratings index: post_rating_unique",
		}))
		repo := NewRatingsRepo(mt.DB)

		err := repo.Insert(ctx, ratings.Rating{Username: "user", TargetID: primitive.NewObjectID().Hex(), Kind: ratings.KindPost})
		assert.True(mt, errors.Is(err, errs.ErrConflict))
	})

	mt.Run("count returns aggregated total", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+CollRatings, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(2)}},
		))
		repo := NewRatingsRepo(mt.DB)

		n, err := repo.Count(ctx, primitive.NewObjectID().Hex(), ratings.KindComment)
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, n)
	})

	mt.Run("get missing rating is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+CollRatings, mtest.FirstBatch))
		repo := NewRatingsRepo(mt.DB)

		_, err := repo.Get(ctx, "user", primitive.NewObjectID().Hex(), ratings.KindPost)
		assert.True(mt, errors.Is(err, errs.ErrNotFound))
	})

	mt.Run("unknown kind is rejected", func(mt *mtest.T) {
		repo := NewRatingsRepo(mt.DB)

		err := repo.Insert(ctx, ratings.Rating{Username: "user", TargetID: primitive.NewObjectID().Hex(), Kind: "pet"})
		assert.Error(mt, err)
	})
}
