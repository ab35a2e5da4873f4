// Package credentials implementa hashing y verificación de passwords (bcrypt)
// y la generación de tokens aleatorios.
package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost es el costo bcrypt usado para passwords nuevos.
const Cost = 10

// TokenBytes es la cantidad de bytes aleatorios de GenerateToken (40 chars hex).
const TokenBytes = 20

var (
	ErrEmptyPassword = errors.New("password is empty")
	ErrAlreadyHashed = errors.New("password is already a bcrypt hash")
	ErrMalformedHash = errors.New("malformed password hash")

	// ErrPasswordTooLong: bcrypt solo mira los primeros 72 bytes.
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// HashPassword devuelve el hash bcrypt (con salt propio) de plain.
// Es CPU-bound: llamarlo desde el goroutine del request, no desde un lock.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	// Nunca re-hashear un hash ya calculado.
	if _, err := bcrypt.Cost([]byte(plain)); err == nil {
		return "", ErrAlreadyHashed
	}

	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword compara plain contra hash usando el compare propio de bcrypt.
// Un mismatch devuelve (false, nil); solo un hash mal formado devuelve error.
func VerifyPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

// GenerateToken devuelve un string opaco criptográficamente aleatorio.
func GenerateToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
