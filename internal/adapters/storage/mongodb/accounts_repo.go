package mongodb

import (
	"context"

	"pet-adoption/internal/domain/accounts"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type accountDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	HashPass string             `bson:"hashpass"`
	Name     *string            `bson:"name"`
	Bio      *string            `bson:"bio"`
	Picture  *string            `bson:"picture"`
}

type AccountsRepo struct {
	coll *mongo.Collection
}

func NewAccountsRepo(db *mongo.Database) *AccountsRepo {
	return &AccountsRepo{coll: db.Collection(CollAccounts)}
}

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		oid = primitive.NewObjectID()
	}
	res, err := r.coll.InsertOne(ctx, accountDoc{
		ID:       oid,
		Username: a.Username,
		HashPass: a.PasswordHash,
		Name:     a.Name,
		Bio:      a.Bio,
		Picture:  a.Picture,
	})
	return insertErr(res, err)
}

func (r *AccountsRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	var d accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&d); err != nil {
		return accounts.Account{}, findErr(err)
	}
	return accounts.Account{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.HashPass,
		Name:         d.Name,
		Bio:          d.Bio,
		Picture:      d.Picture,
	}, nil
}
