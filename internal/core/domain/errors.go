package domain

import "errors"

// GenericAuthFailure is shown when the service gives no reason.
const GenericAuthFailure = "Authentication failed"

var (
	ErrValidation           = errors.New("invalid credentials")
	ErrAuthRejected         = errors.New("authentication rejected")
	ErrTransport            = errors.New("authentication service unreachable")
	ErrProfileRejected      = errors.New("profile request rejected")
	ErrSessionBusy          = errors.New("session operation in progress")
	ErrAlreadyAuthenticated = errors.New("session already authenticated")
	ErrRehydrationDone      = errors.New("session already rehydrated")
	ErrNotAuthenticated     = errors.New("not authenticated")
)

// AuthFailure is a failed sign-in or sign-up. Reason is the text the user
// sees; Status is the HTTP status of the rejection, or 0 when the request
// never got a usable response.
type AuthFailure struct {
	Status int
	Reason string
	Err    error
}

func (f *AuthFailure) Error() string {
	return f.Reason
}

func (f *AuthFailure) Unwrap() error {
	return f.Err
}

// UserMessage returns the user-visible text for a submission error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var af *AuthFailure
	if errors.As(err, &af) && af.Reason != "" {
		return af.Reason
	}
	if errors.Is(err, ErrValidation) {
		return err.Error()
	}
	return GenericAuthFailure
}
