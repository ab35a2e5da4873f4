package memory

import (
	"context"
	"sync"

	"pet-adoption/internal/domain/accounts"
	"pet-adoption/internal/errs"
)

// accountRepo indexa por username: el map hace de índice único.
type accountRepo struct {
	mu         sync.RWMutex
	byUsername map[string]accounts.Account
}

func NewAccountRepo() accounts.Repository {
	return &accountRepo{
		byUsername: make(map[string]accounts.Account),
	}
}

func (r *accountRepo) Create(ctx context.Context, a accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[a.Username]; exists {
		return errs.ErrConflict
	}
	r.byUsername[a.Username] = a
	return nil
}

func (r *accountRepo) GetByUsername(ctx context.Context, username string) (accounts.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byUsername[username]
	if !ok {
		return accounts.Account{}, errs.ErrNotFound
	}
	return a, nil
}
