package mongodb

import (
	"context"
	"fmt"

	"pet-adoption/internal/domain/ratings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ratingDoc guarda postID o commentID según el kind; los índices únicos
// parciales de EnsureIndexes cubren cada caso por separado.
type ratingDoc struct {
	ID        primitive.ObjectID  `bson:"_id"`
	Username  string              `bson:"username"`
	PostID    *primitive.ObjectID `bson:"postID,omitempty"`
	CommentID *primitive.ObjectID `bson:"commentID,omitempty"`
}

type RatingsRepo struct {
	coll *mongo.Collection
}

func NewRatingsRepo(db *mongo.Database) *RatingsRepo {
	return &RatingsRepo{coll: db.Collection(CollRatings)}
}

func targetField(kind ratings.Kind) (string, error) {
	switch kind {
	case ratings.KindPost:
		return "postID", nil
	case ratings.KindComment:
		return "commentID", nil
	default:
		return "", fmt.Errorf("unknown rating kind %q", kind)
	}
}

func (r *RatingsRepo) Insert(ctx context.Context, rt ratings.Rating) error {
	target, err := primitive.ObjectIDFromHex(rt.TargetID)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(rt.ID)
	if err != nil {
		oid = primitive.NewObjectID()
	}

	d := ratingDoc{ID: oid, Username: rt.Username}
	switch rt.Kind {
	case ratings.KindPost:
		d.PostID = &target
	case ratings.KindComment:
		d.CommentID = &target
	default:
		return fmt.Errorf("unknown rating kind %q", rt.Kind)
	}

	res, err := r.coll.InsertOne(ctx, d)
	return insertErr(res, err)
}

func (r *RatingsRepo) filter(username, targetID string, kind ratings.Kind) (bson.M, error) {
	field, err := targetField(kind)
	if err != nil {
		return nil, err
	}
	oid, err := objectID(targetID)
	if err != nil {
		return nil, err
	}
	q := bson.M{field: oid}
	if username != "" {
		q["username"] = username
	}
	return q, nil
}

func (r *RatingsRepo) Delete(ctx context.Context, username, targetID string, kind ratings.Kind) error {
	q, err := r.filter(username, targetID, kind)
	if err != nil {
		return nil // nada que borrar
	}
	_, err = r.coll.DeleteMany(ctx, q)
	return err
}

func (r *RatingsRepo) Get(ctx context.Context, username, targetID string, kind ratings.Kind) (ratings.Rating, error) {
	q, err := r.filter(username, targetID, kind)
	if err != nil {
		return ratings.Rating{}, err
	}
	var d ratingDoc
	if err := r.coll.FindOne(ctx, q).Decode(&d); err != nil {
		return ratings.Rating{}, findErr(err)
	}
	return ratings.Rating{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: d.ID.Timestamp(),
	}, nil
}

func (r *RatingsRepo) Count(ctx context.Context, targetID string, kind ratings.Kind) (int64, error) {
	q, err := r.filter("", targetID, kind)
	if err != nil {
		return 0, nil
	}
	return r.coll.CountDocuments(ctx, q)
}
