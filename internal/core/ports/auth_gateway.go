package ports

import (
	"context"

	"github.com/jobportal/client/internal/core/domain"
)

// SignInRequest is the sign-in body.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the sign-up body.
type SignUpRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	UserType domain.Role `json:"user_type"`
}

// AuthResult is a successful sign-in or sign-up response.
type AuthResult struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type,omitempty"`
	User        domain.Profile `json:"user"`
}

// PlatformStats is the public user count breakdown.
type PlatformStats struct {
	TotalUsers  int `json:"total_users"`
	Hirers      int `json:"hirers"`
	Applicants  int `json:"applicants"`
	Freelancers int `json:"freelancers"`
}

// AuthGateway is the Authentication Service as seen by the client.
// Every method makes exactly one request.
type AuthGateway interface {
	SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error)
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error)
	Profile(ctx context.Context, token string) (*domain.Profile, error)
}

// StatsProvider reports platform-wide user counts. Purely informational.
type StatsProvider interface {
	Stats(ctx context.Context) (*PlatformStats, error)
}
