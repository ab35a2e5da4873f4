package pets

import (
	"context"
	"errors"
	"slices"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/platform/validate"
)

// AccountChecker expone solo la existencia de cuentas.
// Se usa para evitar ciclos de imports entre módulos (pets <-> accounts).
type AccountChecker interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// TransferOwnership pasa la mascota de requester a newOwner.
//
// El chequeo de que requester sea el dueño actual vive acá y no en el handler.
// Devuelve false (sin error) si otra transferencia modificó el documento entre
// la lectura y el update.
func (s *Service) TransferOwnership(ctx context.Context, petID, requester, newOwner string) (bool, error) {
	if !validate.Identifier(petID) || !validate.String(newOwner) || !validate.String(requester) {
		return false, errs.Validation("invalid input")
	}

	exists, err := s.accounts.Exists(ctx, newOwner)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, errs.NotFound("user does not exist")
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return false, errs.NotFound("pet does not exist")
		}
		return false, err
	}

	if p.OwnerUsername != requester {
		return false, errs.ErrForbidden
	}
	if newOwner == p.OwnerUsername {
		return false, errs.Validation("pet already belongs to user")
	}
	if slices.Contains(p.PriorOwners, newOwner) {
		return false, errs.Conflict("user is a prior owner of the pet")
	}

	return s.repo.TransferOwner(ctx, petID, p.OwnerUsername, newOwner)
}

// History devuelve los dueños anteriores en orden cronológico.
func (s *Service) History(ctx context.Context, petID string) ([]string, error) {
	p, err := s.Get(ctx, petID)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.PriorOwners), nil
}
