package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced by the services. Handlers map them to HTTP statuses
// with errors.Is; anything else is treated as an internal failure.
var (
	ErrNotFound     = errors.New("no encontrado")
	ErrInvalidState = errors.New("estado invalido")
	ErrValidation   = errors.New("datos invalidos")
	ErrForbidden    = errors.New("permisos insuficientes")
)

// DomainError carries a user-facing message together with its kind.
type DomainError struct {
	Kind error
	Msg  string
}

func (e *DomainError) Error() string { return e.Msg }

func (e *DomainError) Unwrap() error { return e.Kind }

func notFound(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrInvalidState, Msg: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrForbidden, Msg: fmt.Sprintf(format, args...)}
}

// notFoundOr converts gorm.ErrRecordNotFound into ErrNotFound and passes any
// other error through.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(format, args...)
	}
	return err
}
