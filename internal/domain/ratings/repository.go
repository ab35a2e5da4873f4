package ratings

import "context"

// Repository persiste ratings. Insert debe fallar con errs.ErrConflict de forma
// atómica (índice único / map con lock) cuando ya existe (username, target, kind).
type Repository interface {
	Insert(ctx context.Context, r Rating) error
	Delete(ctx context.Context, username, targetID string, kind Kind) error
	Get(ctx context.Context, username, targetID string, kind Kind) (Rating, error)
	Count(ctx context.Context, targetID string, kind Kind) (int64, error)
}
