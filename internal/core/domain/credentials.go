package domain

// AuthMode selects the Authentication Service endpoint for a submission.
type AuthMode string

const (
	ModeSignIn AuthMode = "signin"
	ModeSignUp AuthMode = "signup"
)

// Valid reports whether m is sign-in or sign-up.
func (m AuthMode) Valid() bool {
	return m == ModeSignIn || m == ModeSignUp
}

// Label returns the button label for the mode ("Sign In").
func (m AuthMode) Label() string {
	if m == ModeSignUp {
		return "Sign Up"
	}
	return "Sign In"
}

// Credentials is a transient credential submission. Name and Role only
// matter for sign-up; the sign-up rules are registered as a struct-level
// validation by the session service.
type Credentials struct {
	Mode     AuthMode `validate:"required,oneof=signin signup"`
	Role     Role
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Name     string
}
