package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"awardflow/internal/service"
)

// respondWithServiceError maps service sentinel errors to HTTP status codes.
// Policy violations are 4xx; anything unmapped is a 500.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrParameterNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPriorityRequired),
		errors.Is(err, service.ErrGraceRequired),
		errors.Is(err, service.ErrWithdrawRejected),
		errors.Is(err, service.ErrWithdrawPending),
		errors.Is(err, service.ErrWithdrawTerminal),
		errors.Is(err, service.ErrNoWithdrawRequest),
		errors.Is(err, service.ErrNotFinalizable),
		errors.Is(err, service.ErrAlreadyFinalized),
		errors.Is(err, service.ErrNoClarification):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnitCannotWithdraw),
		errors.Is(err, service.ErrInvalidRole):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserInactive):
		respondWithError(w, http.StatusForbidden, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
