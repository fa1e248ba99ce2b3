package service

import (
	"errors"
	"fmt"

	"github.com/ltplabs/ecatalog/internal/database/store"
)

// Base error classes. The HTTP layer maps these with errors.Is; the entity
// sentinels below wrap them so callers can match either level.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidState  = errors.New("invalid state")
)

var (
	ErrRequestNotFound = fmt.Errorf("request %w", ErrNotFound)
	ErrClientNotFound  = fmt.Errorf("client %w", ErrNotFound)
	ErrAdminNotFound   = fmt.Errorf("admin %w", ErrNotFound)
	ErrLogNotFound     = fmt.Errorf("log %w", ErrNotFound)
	ErrDemoNotFound    = fmt.Errorf("demo %w", ErrNotFound)
	ErrImageNotFound   = fmt.Errorf("docker image %w", ErrNotFound)

	ErrInvalidAdmin       = fmt.Errorf("%w: admin does not exist", ErrValidation)
	ErrInvalidClient      = fmt.Errorf("%w: client does not exist", ErrValidation)
	ErrInvalidRequestKind = fmt.Errorf("%w: tipo_pedido must be renovação or revogação", ErrValidation)
	ErrInvalidLogKind     = fmt.Errorf("%w: unknown log tipo", ErrValidation)
	ErrInvalidDemoStatus  = fmt.Errorf("%w: estado must be ativa, inativa or manutenção", ErrValidation)
)

// invalid builds a validation error carrying a field-specific message.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// mapStoreErr translates store errors into the service taxonomy. notFound is
// the entity sentinel returned for store.ErrNotFound.
func mapStoreErr(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	case errors.Is(err, store.ErrConstraint):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}
