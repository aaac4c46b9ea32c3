// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
	"github.com/super0605/customer-service-platform-backend/internal/shared"
)

// ErrValidation marks handler-level request validation failures.
var ErrValidation = errors.New("validation failed")

// RespondError maps domain errors to HTTP responses using RFC7807.
// Authorization failures and unknown principals both answer 401; entities
// hidden by scope answer 404 exactly like entities that do not exist.
func RespondError(w http.ResponseWriter, err error) {
	var (
		denied    *authz.PermissionDeniedError
		protected *authz.SuperAdminProtectedError
		noUser    *shared.UnknownPrincipalError
		notFound  *shared.EntityNotFoundError
	)
	switch {
	case errors.Is(err, shared.ErrMissingCredentials),
		errors.Is(err, shared.ErrMalformedCredentials):
		Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInvalidToken),
		errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.As(err, &noUser):
		Problem(w, http.StatusUnauthorized, "Unauthorized", noUser.Error())
	case errors.As(err, &denied):
		Problem(w, http.StatusUnauthorized, "Unauthorized", denied.Error())
	case errors.As(err, &protected):
		Problem(w, http.StatusUnauthorized, "Unauthorized", protected.Error())
	case errors.As(err, &notFound):
		Problem(w, http.StatusNotFound, "Not Found", notFound.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
