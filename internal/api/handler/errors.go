package handler

import (
	"errors"
	"net/http"

	"github.com/jobportal/client/internal/core/domain"
)

// ErrorStatus maps a session error to an HTTP status and the message the
// user sees. ok is false for errors that are not part of the session
// taxonomy.
func ErrorStatus(err error) (code int, msg string, ok bool) {
	var af *domain.AuthFailure
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error(), true
	case errors.As(err, &af):
		return http.StatusUnauthorized, domain.UserMessage(err), true
	case errors.Is(err, domain.ErrAlreadyAuthenticated), errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict, err.Error(), true
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, err.Error(), true
	}
	return 0, "", false
}
