package handler

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jobportal/client/internal/core/domain"
	"github.com/jobportal/client/internal/core/ports"
	"github.com/jobportal/client/internal/core/service"
)

// credentialsRequest is accepted as JSON or as an HTML form post. The
// presence rules live in the session service; only shape is checked here.
type credentialsRequest struct {
	Email    string `json:"email"     form:"email"     validate:"max=320"`
	Password string `json:"password"  form:"password"  validate:"max=256"`
	Name     string `json:"name"      form:"name"      validate:"max=100"`
	UserType string `json:"user_type" form:"user_type" validate:"omitempty,oneof=hirer applicant freelancer"`
}

func (r credentialsRequest) credentials(mode domain.AuthMode) domain.Credentials {
	return domain.Credentials{
		Mode:     mode,
		Role:     domain.Role(r.UserType),
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
	}
}

// sessionResponse is the public view of the session. The token itself is
// never exposed.
type sessionResponse struct {
	State          domain.SessionState     `json:"state"`
	Authenticated  bool                    `json:"authenticated"`
	Profile        *domain.Profile         `json:"profile,omitempty"`
	Dashboard      domain.DashboardVariant `json:"dashboard,omitempty"`
	TokenExpiresAt *time.Time              `json:"token_expires_at,omitempty"`
}

func newSessionResponse(s domain.Snapshot) sessionResponse {
	resp := sessionResponse{
		State:         s.State,
		Authenticated: s.Authenticated(),
	}
	if resp.Authenticated {
		resp.Profile = s.Profile
		resp.Dashboard = domain.DashboardFor(s.Profile.UserType).Variant
		resp.TokenExpiresAt = tokenExpiry(s.Token)
	}
	return resp
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client has no key; the value is informational only. Opaque or
// non-expiring tokens yield nil.
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time.UTC()
	return &t
}

type dashboardResponse struct {
	Welcome   string           `json:"welcome"`
	Profile   *domain.Profile  `json:"profile"`
	Dashboard domain.Dashboard `json:"dashboard"`
}

func newDashboardResponse(v service.View) dashboardResponse {
	return dashboardResponse{
		Welcome:   v.Welcome,
		Profile:   v.Profile,
		Dashboard: *v.Dashboard,
	}
}

// Page models handed to the renderer.

type roleCard struct {
	Role  domain.Role
	Title string
}

type landingPage struct {
	Roles []roleCard
	Stats *ports.PlatformStats
}

type authPage struct {
	Mode      domain.AuthMode
	Role      domain.Role
	Title     string
	Email     string
	Name      string
	Error     string
	Alternate domain.AuthMode
}

type dashboardPage struct {
	Welcome   string
	Profile   *domain.Profile
	Dashboard *domain.Dashboard
}

func newAuthPage(mode domain.AuthMode, role domain.Role) authPage {
	alt := domain.ModeSignUp
	if mode == domain.ModeSignUp {
		alt = domain.ModeSignIn
	}
	return authPage{
		Mode:      mode,
		Role:      role,
		Title:     mode.Label() + " as " + role.Title(),
		Alternate: alt,
	}
}

func newLandingPage(stats *ports.PlatformStats) landingPage {
	cards := make([]roleCard, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		cards = append(cards, roleCard{Role: r, Title: r.Title()})
	}
	return landingPage{Roles: cards, Stats: stats}
}
