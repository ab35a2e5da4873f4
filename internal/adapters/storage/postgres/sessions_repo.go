package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/ports/session"

	"github.com/google/uuid"
)

type SessionsRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ session.Store = (*SessionsRepo)(nil)

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db, now: time.Now}
}

func (r *SessionsRepo) Create(ctx context.Context, username string, ttl time.Duration) (session.Session, error) {
	if ttl <= 0 {
		return session.Session{}, errors.New("session ttl must be positive")
	}

	now := r.now().UTC()
	s := session.Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, username, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, s.ID, s.Username, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func (r *SessionsRepo) Get(ctx context.Context, id string) (session.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return session.Session{}, errs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`, id, r.now().UTC())

	var s session.Session
	if err := row.Scan(&s.ID, &s.Username, &s.CreatedAt, &s.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, errs.ErrNotFound
		}
		return session.Session{}, err
	}
	return s, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// PurgeExpired borra sesiones vencidas y devuelve cuántas eliminó.
func (r *SessionsRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, r.now().UTC())
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
