package mongodb

import (
	"context"
	"time"

	"pet-adoption/internal/domain/comments"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	PostID   primitive.ObjectID `bson:"postID"`
	Comment  string             `bson:"comment"`
	Date     int64              `bson:"date"`
}

func (d commentDoc) toComment() comments.Comment {
	return comments.Comment{
		ID:             d.ID.Hex(),
		AuthorUsername: d.Username,
		PostID:         d.PostID.Hex(),
		Body:           d.Comment,
		CreatedAt:      time.Unix(d.Date, 0),
	}
}

type CommentsRepo struct {
	coll *mongo.Collection
}

func NewCommentsRepo(db *mongo.Database) *CommentsRepo {
	return &CommentsRepo{coll: db.Collection(CollComments)}
}

func (r *CommentsRepo) Create(ctx context.Context, c comments.Comment) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return err
	}
	postOID, err := primitive.ObjectIDFromHex(c.PostID)
	if err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, commentDoc{
		ID:       oid,
		Username: c.AuthorUsername,
		PostID:   postOID,
		Comment:  c.Body,
		Date:     c.CreatedAt.Unix(),
	})
	return insertErr(res, err)
}

func (r *CommentsRepo) GetByID(ctx context.Context, id string) (comments.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return comments.Comment{}, err
	}
	var d commentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return comments.Comment{}, findErr(err)
	}
	return d.toComment(), nil
}

func (r *CommentsRepo) ListByPost(ctx context.Context, postID string) ([]comments.Comment, error) {
	oid, err := objectID(postID)
	if err != nil {
		return []comments.Comment{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"postID": oid}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]comments.Comment, 0)
	for cur.Next(ctx) {
		var d commentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toComment())
	}
	return out, cur.Err()
}
