package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context, f Filter) ([]Pet, error)

	// TransferOwner es un update atómico de un solo documento, condicionado a que
	// el dueño siga siendo currentOwner: setea newOwner y agrega currentOwner al
	// final de PriorOwners. Devuelve true si modificó el documento.
	TransferOwner(ctx context.Context, id, currentOwner, newOwner string) (bool, error)
}
