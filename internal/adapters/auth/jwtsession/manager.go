// Package jwtsession implementa auth.AuthVerifier con cookies firmadas (JWT HS256)
// que apuntan a una sesión server-side. Revocar la sesión invalida el token
// aunque la firma siga siendo válida.
package jwtsession

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/session"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrSecretEmpty  = errors.New("session secret is empty")
	ErrInvalidToken = errors.New("invalid session token")
)

// Manager emite, verifica y revoca tokens de sesión.
type Manager struct {
	store  session.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ auth.AuthVerifier = (*Manager)(nil)

func NewManager(store session.Store, secret []byte, ttl time.Duration) (*Manager, error) {
	if len(secret) == 0 {
		return nil, ErrSecretEmpty
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &Manager{store: store, secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue crea la sesión de username y devuelve el token firmado y su vencimiento.
func (m *Manager) Issue(ctx context.Context, username string) (string, time.Time, error) {
	s, err := m.store.Create(ctx, username, m.ttl)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		Subject:   s.ID,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		_ = m.store.Delete(ctx, s.ID)
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, s.ExpiresAt, nil
}

// Verify valida firma y vencimiento y resuelve la sesión. Cualquier falla
// se reporta como errs.ErrUnauthorized.
func (m *Manager) Verify(ctx context.Context, token string) (auth.Claims, error) {
	sid, err := m.sessionID(token, true)
	if err != nil {
		return auth.Claims{}, err
	}

	s, err := m.store.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return auth.Claims{}, fmt.Errorf("%w: session expired or revoked", errs.ErrUnauthorized)
		}
		return auth.Claims{}, err
	}
	return auth.Claims{Username: s.Username, SessionID: s.ID}, nil
}

// Revoke borra la sesión del token. Un token vencido igual se revoca; uno
// con firma inválida no.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	sid, err := m.sessionID(token, false)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, sid)
}

func (m *Manager) sessionID(token string, validateClaims bool) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: %w", errs.ErrUnauthorized, ErrTokenEmpty)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %v", errs.ErrUnauthorized, ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: %w: missing subject", errs.ErrUnauthorized, ErrInvalidToken)
	}
	return claims.Subject, nil
}
