package mongodb

import (
	"context"
	"time"

	"pet-adoption/internal/domain/posts"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type postDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Title    string             `bson:"title"`
	Image    string             `bson:"image"`
	Tag      string             `bson:"tag"`
	Body     string             `bson:"body"`
	Date     int64              `bson:"date"` // epoch seconds
}

func (d postDoc) toPost() posts.Post {
	return posts.Post{
		ID:             d.ID.Hex(),
		AuthorUsername: d.Username,
		Title:          d.Title,
		ImageRef:       d.Image,
		Tag:            d.Tag,
		Body:           d.Body,
		CreatedAt:      time.Unix(d.Date, 0),
	}
}

type PostsRepo struct {
	coll *mongo.Collection
}

func NewPostsRepo(db *mongo.Database) *PostsRepo {
	return &PostsRepo{coll: db.Collection(CollPosts)}
}

func (r *PostsRepo) Create(ctx context.Context, p posts.Post) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, postDoc{
		ID:       oid,
		Username: p.AuthorUsername,
		Title:    p.Title,
		Image:    p.ImageRef,
		Tag:      p.Tag,
		Body:     p.Body,
		Date:     p.CreatedAt.Unix(),
	})
	return insertErr(res, err)
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return posts.Post{}, err
	}
	var d postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return posts.Post{}, findErr(err)
	}
	return d.toPost(), nil
}

func (r *PostsRepo) ListAll(ctx context.Context) ([]posts.Post, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]posts.Post, 0)
	for cur.Next(ctx) {
		var d postDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toPost())
	}
	return out, cur.Err()
}
