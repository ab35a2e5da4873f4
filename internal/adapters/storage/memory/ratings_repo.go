package memory

import (
	"context"
	"sync"

	"pet-adoption/internal/domain/ratings"
	"pet-adoption/internal/errs"
)

type ratingKey struct {
	username string
	targetID string
	kind     ratings.Kind
}

// ratingRepo: la clave (username, target, kind) hace de índice único.
type ratingRepo struct {
	mu    sync.RWMutex
	byKey map[ratingKey]ratings.Rating
}

func NewRatingRepo() ratings.Repository {
	return &ratingRepo{
		byKey: make(map[ratingKey]ratings.Rating),
	}
}

func (r *ratingRepo) Insert(ctx context.Context, rt ratings.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := ratingKey{rt.Username, rt.TargetID, rt.Kind}
	if _, exists := r.byKey[k]; exists {
		return errs.ErrConflict
	}
	r.byKey[k] = rt
	return nil
}

func (r *ratingRepo) Delete(ctx context.Context, username, targetID string, kind ratings.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byKey, ratingKey{username, targetID, kind})
	return nil
}

func (r *ratingRepo) Get(ctx context.Context, username, targetID string, kind ratings.Kind) (ratings.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.byKey[ratingKey{username, targetID, kind}]
	if !ok {
		return ratings.Rating{}, errs.ErrNotFound
	}
	return rt, nil
}

func (r *ratingRepo) Count(ctx context.Context, targetID string, kind ratings.Kind) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for k := range r.byKey {
		if k.targetID == targetID && k.kind == kind {
			n++
		}
	}
	return n, nil
}
