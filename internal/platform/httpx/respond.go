// Package httpx reúne helpers de respuesta compartidos por los handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-companion/internal/engine"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError mapea errores de validación a 400 con detalle por campo; el
// resto que el handler no haya tratado antes cae en 500.
func WriteError(w http.ResponseWriter, err error) {
	var verrs engine.ValidationErrors
	if errors.As(err, &verrs) {
		WriteJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: verrs.Fields(),
		})
		return
	}

	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		WriteJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: map[string]string{verr.Field: verr.Message},
		})
		return
	}

	if errors.Is(err, engine.ErrInvalidInput) {
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input"})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func WriteNotFound(w http.ResponseWriter, what string) {
	WriteJSON(w, http.StatusNotFound, errorResponse{Error: what + " not found"})
}
