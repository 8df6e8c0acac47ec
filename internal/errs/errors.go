// Package errs defines the stable error categories shared by the service
// and handler layers. Services wrap these with fmt.Errorf("...: %w", ...)
// and handlers map them to HTTP status codes with errors.Is.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound covers absent users, requests and groups. Ownership-scoped
	// lookups also return it for records owned by someone else, so a caller
	// cannot distinguish "missing" from "not yours".
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument covers malformed or self-referential input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrForbidden is returned when the caller is not the recipient of the
	// request being responded to.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict covers duplicate pending requests and already-established
	// buddy relationships.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState is returned when resolving a request that is no longer
	// pending. Accepted and rejected are terminal.
	ErrInvalidState = errors.New("invalid state")
)

// HTTPStatus maps a service error to the response status code. Anything
// outside the taxonomy is an internal failure.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
