package engine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidationError es un rechazo de frontera: el dato crudo está mal formado
// o fuera de rango y nunca debe entrar al motor corrigiéndolo en silencio.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// ValidationErrors acumula errores por campo para respuestas de formulario.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Error())
	}
	return strings.Join(parts, "; ")
}

func (e ValidationErrors) Unwrap() error { return ErrInvalidInput }

// Fields devuelve el detalle campo -> mensaje (para respuestas HTTP 400).
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, v := range e {
		if _, dup := out[v.Field]; !dup {
			out[v.Field] = v.Message
		}
	}
	return out
}

// ConfigurationError: tablas de umbrales o pesos inválidos. Es fatal; el
// motor no puede adivinar umbrales clínicos.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "engine config: " + e.Reason
}
