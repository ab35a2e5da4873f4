package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-adoption/internal/domain/comments"
	"pet-adoption/internal/errs"
)

type commentRepo struct {
	mu   sync.RWMutex
	byID map[string]comments.Comment
}

func NewCommentRepo() comments.Repository {
	return &commentRepo{
		byID: make(map[string]comments.Comment),
	}
}

func (r *commentRepo) Create(ctx context.Context, c comments.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		return errors.New("comment id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errs.Conflict("comment already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (comments.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return comments.Comment{}, errs.ErrNotFound
	}
	return c, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]comments.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]comments.Comment, 0)
	for _, c := range r.byID {
		if c.PostID == postID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
