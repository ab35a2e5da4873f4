package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/platform/credentials"
	"pet-adoption/internal/platform/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	repo Repository

	hash   func(string) (string, error)
	verify func(plain, hash string) (bool, error)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		hash:   credentials.HashPassword,
		verify: credentials.VerifyPassword,
	}
}

// Create registra una cuenta nueva. La unicidad del username la garantiza el
// store en el insert; el duplicado vuelve como ErrConflict.
func (s *Service) Create(ctx context.Context, username, password string, p Profile) (Account, error) {
	if !validate.String(username) || !validate.String(password) {
		return Account{}, errs.Validation("expected a string for inputs")
	}

	hash, err := s.hash(password)
	if err != nil {
		if errors.Is(err, credentials.ErrPasswordTooLong) || errors.Is(err, credentials.ErrAlreadyHashed) {
			return Account{}, errs.Validation(err.Error())
		}
		return Account{}, fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}

	a := Account{
		ID:           primitive.NewObjectID().Hex(),
		Username:     username,
		PasswordHash: hash,
		Name:         optional(p.Name),
		Bio:          optional(p.Bio),
		Picture:      optional(p.Picture),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return Account{}, errs.Conflict("user already exists")
		}
		return Account{}, err
	}
	return a, nil
}

// Get devuelve la cuenta o nil si no existe.
func (s *Service) Get(ctx context.Context, username string) (*Account, error) {
	if !validate.String(username) {
		return nil, errs.Validation("expected a string for inputs")
	}

	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Exists lo usan otros módulos (pets) sin depender del modelo Account.
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	a, err := s.Get(ctx, username)
	if err != nil {
		return false, err
	}
	return a != nil, nil
}

// Authenticate es el paso de login: username inexistente y password incorrecto
// dan el mismo ErrUnauthorized para no revelar qué cuentas existen.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Account, error) {
	if !validate.String(username) || !validate.String(password) {
		return Account{}, errs.Validation("expected a string for inputs")
	}

	a, err := s.Get(ctx, username)
	if err != nil {
		return Account{}, err
	}
	if a == nil {
		return Account{}, fmt.Errorf("%w: username or password is incorrect", errs.ErrUnauthorized)
	}

	ok, err := s.verify(password, a.PasswordHash)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
	if !ok {
		return Account{}, fmt.Errorf("%w: username or password is incorrect", errs.ErrUnauthorized)
	}
	return *a, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
