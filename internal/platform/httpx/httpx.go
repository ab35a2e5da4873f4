// Package httpx junta lo que todos los handlers repetían: respuestas JSON,
// decode del body y la traducción de errs a status HTTP.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pet-adoption/internal/errs"
	"pet-adoption/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes limita los bodies JSON.
const MaxBodyBytes = 1 << 20

type ErrorBody struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage responde {"error": msg} con el status dado.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// StatusFor mapea el kind del error a un status.
func StatusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrUnauthorized:
		return http.StatusUnauthorized
	case errs.ErrForbidden:
		return http.StatusForbidden
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError escribe err como JSON. Los 5xx se loguean y no exponen el detalle.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"request_id": chimw.GetReqID(r.Context()),
				"error":      err,
			})
		}
		WriteMessage(w, status, "internal error")
		return
	}
	WriteMessage(w, status, err.Error())
}

// DecodeJSON decodifica el body en v. Body vacío o inválido => errs.ErrValidation.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.Validation("empty body")
		}
		return errs.Validation("invalid json")
	}
	return nil
}
