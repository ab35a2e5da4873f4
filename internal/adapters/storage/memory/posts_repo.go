package memory

import (
	"context"
	"errors"
	"sync"

	"pet-adoption/internal/domain/posts"
	"pet-adoption/internal/errs"
)

type postRepo struct {
	mu   sync.RWMutex
	byID map[string]posts.Post
}

func NewPostRepo() posts.Repository {
	return &postRepo{
		byID: make(map[string]posts.Post),
	}
}

func (r *postRepo) Create(ctx context.Context, p posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		return errors.New("post id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errs.Conflict("post already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return posts.Post{}, errs.ErrNotFound
	}
	return p, nil
}

func (r *postRepo) ListAll(ctx context.Context) ([]posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]posts.Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}
