package comments

import "context"

type Repository interface {
	Create(ctx context.Context, c Comment) error
	GetByID(ctx context.Context, id string) (Comment, error)
	ListByPost(ctx context.Context, postID string) ([]Comment, error)
}
