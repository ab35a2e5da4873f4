// Package redis guarda sesiones de login en Redis, una key por sesión con TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/ports/session"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

type sessionData struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore implementa session.Store sobre Redis.
type SessionStore struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

var _ session.Store = (*SessionStore)(nil)

// NewSessionStore abre el cliente y verifica la conexión.
func NewSessionStore(redisURL string) (*SessionStore, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewSessionStoreWithClient(client), nil
}

// NewSessionStoreWithClient usa un cliente ya configurado.
func NewSessionStoreWithClient(client *goredis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
		now:    time.Now,
	}
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}

func (s *SessionStore) Create(ctx context.Context, username string, ttl time.Duration) (session.Session, error) {
	if ttl <= 0 {
		return session.Session{}, errors.New("session ttl must be positive")
	}

	now := s.now()
	sess := session.Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	raw, err := json.Marshal(sessionData{
		Username:  sess.Username,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return session.Session{}, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sess.ID), raw, ttl).Err(); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (session.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.Session{}, errs.ErrNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("lookup session: %w", err)
	}

	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return session.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}

	return session.Session{
		ID:        id,
		Username:  data.Username,
		CreatedAt: data.CreatedAt,
		ExpiresAt: data.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}
