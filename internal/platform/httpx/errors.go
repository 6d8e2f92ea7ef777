package httpx

import (
	"errors"
	"net/http"

	"github.com/routeledger/routeledger/internal/shared"
)

// RespondError maps domain errors to HTTP responses. Validation and role
// errors carry their message through; unexpected errors surface as a generic
// failure without leaking internals, while not-found stays distinct.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrProtected):
		Problem(w, http.StatusConflict, "Protected Reference", err.Error())
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrInvalidRole):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
