package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/ports/session"

	"github.com/google/uuid"
)

type sessionRepo struct {
	mu   sync.Mutex
	byID map[string]session.Session
	now  func() time.Time
}

func NewSessionRepo() session.Store {
	return newSessionRepo(time.Now)
}

func newSessionRepo(now func() time.Time) *sessionRepo {
	return &sessionRepo{
		byID: make(map[string]session.Session),
		now:  now,
	}
}

func (r *sessionRepo) Create(ctx context.Context, username string, ttl time.Duration) (session.Session, error) {
	if ttl <= 0 {
		return session.Session{}, errors.New("session ttl must be positive")
	}

	now := r.now()
	s := session.Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	return s, nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return session.Session{}, errs.ErrNotFound
	}
	if s.Expired(r.now()) {
		// limpieza perezosa
		delete(r.byID, id)
		return session.Session{}, errs.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}
