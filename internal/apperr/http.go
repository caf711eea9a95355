package apperr

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a service error onto its status family and caller-facing
// message. Unrecognized errors collapse to a generic 500; internal detail
// never leaks to the client.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrOwnershipViolation):
		return http.StatusForbidden, "referenced resource belongs to a different owner"
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
