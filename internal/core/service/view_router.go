package service

import "github.com/jobportal/client/internal/core/domain"

// ViewKind is the top-level surface shown to the user.
type ViewKind string

const (
	ViewLanding   ViewKind = "landing"
	ViewDashboard ViewKind = "dashboard"
)

// View is what the UI renders for a session snapshot.
type View struct {
	Kind      ViewKind
	Profile   *domain.Profile
	Dashboard *domain.Dashboard
	Welcome   string
}

// ResolveView maps a snapshot to a view. Anonymous and pending sessions see
// the landing page; authenticated ones get the dashboard for their role.
func ResolveView(s domain.Snapshot) View {
	if !s.Authenticated() {
		return View{Kind: ViewLanding}
	}
	return DashboardView(*s.Profile)
}

// DashboardView builds the authenticated view for p.
func DashboardView(p domain.Profile) View {
	d := domain.DashboardFor(p.UserType)
	return View{
		Kind:      ViewDashboard,
		Profile:   &p,
		Dashboard: &d,
		Welcome:   "Welcome, " + p.Name + "!",
	}
}
