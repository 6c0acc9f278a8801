package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jobportal/client/internal/core/domain"
)

// newCredentialsValidator returns a validator with the sign-up rules
// registered as a struct-level check on domain.Credentials.
func newCredentialsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(signUpRules, domain.Credentials{})
	return v
}

func signUpRules(sl validator.StructLevel) {
	creds := sl.Current().Interface().(domain.Credentials)
	if creds.Mode != domain.ModeSignUp {
		return
	}
	if creds.Name == "" {
		sl.ReportError(creds.Name, "Name", "name", "required", "")
	}
	if !creds.Role.Valid() {
		sl.ReportError(creds.Role, "Role", "role", "oneof", "hirer applicant freelancer")
	}
}

// validateCredentials checks the submission preconditions. The returned
// error wraps domain.ErrValidation.
func validateCredentials(v *validator.Validate, creds domain.Credentials) error {
	err := v.Struct(creds)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
