// Package uploads guarda las imágenes subidas y devuelve la referencia que
// persisten pets y posts (el core solo ve ese string).
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxBytes es el tamaño máximo aceptado por archivo.
const MaxBytes = 8 << 20

var (
	ErrEmptyFile    = errors.New("empty file")
	ErrFileTooLarge = errors.New("file too large")
)

var allowedExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// Store escribe archivos en un directorio local.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("upload dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir devuelve el directorio raíz (para servirlo como estático).
func (s *Store) Dir() string { return s.dir }

// Save copia r a un archivo nuevo con nombre uuid y devuelve ese nombre como referencia.
// La extensión del nombre original se conserva solo si es de imagen.
func (s *Store) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExt[ext]; !ok {
		ext = ""
	}
	ref := uuid.NewString() + ext

	f, err := os.OpenFile(filepath.Join(s.dir, ref), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, MaxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("write upload: %w", err)
	case closeErr != nil:
		err = fmt.Errorf("close upload: %w", closeErr)
	case n == 0:
		err = ErrEmptyFile
	case n > MaxBytes:
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, ref))
		return "", err
	}
	return ref, nil
}

// SaveFormFile guarda la parte field de un request multipart ya parseado.
// Devuelve "" sin error si el request no trae esa parte.
func (s *Store) SaveFormFile(r *http.Request, field string) (string, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()
	return s.Save(r.Context(), f, hdr.Filename)
}

// Remove borra un archivo guardado por Save. Una referencia inexistente no es error.
func (s *Store) Remove(ref string) error {
	if ref == "" || filepath.Base(ref) != ref {
		return fmt.Errorf("invalid upload ref %q", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, ref)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
