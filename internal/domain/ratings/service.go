package ratings

import (
	"context"
	"errors"
	"time"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/platform/validate"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) validate(kind Kind, username, targetID string) error {
	if !kind.Valid() {
		return errs.Validation("unknown rating kind")
	}
	if !validate.String(username) || !validate.Identifier(targetID) {
		return errs.Validation("invalid input")
	}
	return nil
}

// Like registra el like. Un segundo like del mismo usuario falla con ErrConflict;
// el insert mismo es el chequeo, no hay ventana entre "existe?" e "insertar".
func (s *Service) Like(ctx context.Context, kind Kind, username, targetID string) (Rating, error) {
	if err := s.validate(kind, username, targetID); err != nil {
		return Rating{}, err
	}

	r := Rating{
		ID:        primitive.NewObjectID().Hex(),
		Username:  username,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return Rating{}, errs.Conflict("user already liked the " + string(kind))
		}
		return Rating{}, err
	}
	return r, nil
}

// Unlike es idempotente: sin rating previo no hay error.
func (s *Service) Unlike(ctx context.Context, kind Kind, username, targetID string) error {
	if err := s.validate(kind, username, targetID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, username, targetID, kind)
}

// Get devuelve el rating de username sobre targetID, o nil si no le dio like.
func (s *Service) Get(ctx context.Context, kind Kind, username, targetID string) (*Rating, error) {
	if err := s.validate(kind, username, targetID); err != nil {
		return nil, err
	}
	r, err := s.repo.Get(ctx, username, targetID, kind)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// Sum cuenta los likes de targetID.
func (s *Service) Sum(ctx context.Context, kind Kind, targetID string) (int64, error) {
	if !kind.Valid() {
		return 0, errs.Validation("unknown rating kind")
	}
	if !validate.Identifier(targetID) {
		return 0, errs.Validation("invalid input")
	}
	return s.repo.Count(ctx, targetID, kind)
}
