package accounts

import "context"

type Repository interface {
	// Create falla con errs.ErrConflict si el username ya existe (índice único).
	Create(ctx context.Context, a Account) error
	// GetByUsername devuelve errs.ErrNotFound si no existe.
	GetByUsername(ctx context.Context, username string) (Account, error)
}
