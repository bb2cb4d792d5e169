package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a status y código en un único punto.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("access denied")
	ErrStateConflict      = errors.New("conflict with current state")
	ErrQualityPending     = errors.New("component quality pending review")
	ErrComponentRejected  = errors.New("component rejected")
	ErrRateLimited        = errors.New("too many attempts")
)

// Error asocia un mensaje legible a un error de dominio.
// errors.Is(err, ErrNotFound) sigue funcionando a través de Unwrap.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Errorf construye un Error de tipo kind con mensaje formateado.
func Errorf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Message devuelve el mensaje para el cliente: el de Error si existe, si no el del sentinel.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.msg
	}
	return err.Error()
}
