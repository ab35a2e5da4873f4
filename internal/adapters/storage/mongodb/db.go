// Package mongodb implementa los repositorios de dominio sobre MongoDB.
//
// Los nombres de colecciones y campos respetan los documentos que ya existen
// en la base (account, animal, post, comment, ratings).
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollAccounts = "account"
	CollPets     = "animal"
	CollPosts    = "post"
	CollComments = "comment"
	CollRatings  = "ratings"
)

// Connect abre el cliente y hace ping con timeout.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices de los que dependen las invariantes de unicidad:
// username único por cuenta y un rating por (username, target) para cada kind.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollAccounts: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("username_unique"),
			},
		},
		CollPets: {
			{Keys: bson.D{{Key: "username", Value: 1}}},
		},
		CollComments: {
			{Keys: bson.D{{Key: "postID", Value: 1}}},
		},
		CollRatings: {
			{
				Keys: bson.D{{Key: "username", Value: 1}, {Key: "postID", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("post_rating_unique").
					SetPartialFilterExpression(bson.M{"postID": bson.M{"$exists": true}}),
			},
			{
				Keys: bson.D{{Key: "username", Value: 1}, {Key: "commentID", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("comment_rating_unique").
					SetPartialFilterExpression(bson.M{"commentID": bson.M{"$exists": true}}),
			},
			{Keys: bson.D{{Key: "postID", Value: 1}}},
			{Keys: bson.D{{Key: "commentID", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// objectID convierte el id hex del dominio. Un id mal formado nunca existe.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.ErrNotFound
	}
	return oid, nil
}

// insertErr traduce errores de InsertOne a los kinds del dominio.
func insertErr(res *mongo.InsertOneResult, err error) error {
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrConflict
		}
		return err
	}
	if res == nil || res.InsertedID == nil {
		return fmt.Errorf("%w: insert returned no id", errs.ErrInternal)
	}
	return nil
}

func findErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}
	return err
}
