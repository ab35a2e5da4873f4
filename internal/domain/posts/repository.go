package posts

import "context"

type Repository interface {
	Create(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id string) (Post, error)
	// ListAll no garantiza orden; el handler ordena.
	ListAll(ctx context.Context) ([]Post, error)
}
