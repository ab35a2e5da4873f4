package session

import (
	"context"
	"time"
)

// Session es el registro server-side de un login.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persiste sesiones. Get devuelve errs.ErrNotFound si la sesión no existe
// o ya expiró; Delete es idempotente.
type Store interface {
	Create(ctx context.Context, username string, ttl time.Duration) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
