// Package errs contiene los tipos de error compartidos entre stores, servicios y handlers.
//
// Cada falla del core lleva exactamente uno de estos sentinels (envuelto con %w
// para agregar contexto). Los handlers HTTP los traducen a status con errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: input mal formado o faltante. Siempre corregible por el caller.
	ErrValidation = errors.New("invalid input")

	// ErrConflict: violación de unicidad (username existente, like repetido, ...).
	ErrConflict = errors.New("conflict")

	// ErrNotFound: la entidad referenciada no existe.
	ErrNotFound = errors.New("not found")

	// ErrInternal: la persistencia devolvió un resultado vacío o inesperado.
	ErrInternal = errors.New("internal error")

	// ErrForbidden: identidad válida pero sin permiso sobre el recurso.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized: credenciales inválidas o request anónimo.
	ErrUnauthorized = errors.New("unauthorized")
)

// Validation envuelve ErrValidation con un mensaje legible.
func Validation(msg string) error { return fmt.Errorf("%w: %s", ErrValidation, msg) }

// Conflict envuelve ErrConflict con un mensaje legible.
func Conflict(msg string) error { return fmt.Errorf("%w: %s", ErrConflict, msg) }

// NotFound envuelve ErrNotFound con un mensaje legible.
func NotFound(msg string) error { return fmt.Errorf("%w: %s", ErrNotFound, msg) }

// Kind devuelve el sentinel que clasifica err, o nil si no es ninguno de los conocidos.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrForbidden, ErrUnauthorized, ErrInternal} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
