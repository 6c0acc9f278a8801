package domain

// DashboardVariant names the dashboard shell rendered for a role.
type DashboardVariant string

const (
	VariantHirer      DashboardVariant = "hirer"
	VariantApplicant  DashboardVariant = "applicant"
	VariantFreelancer DashboardVariant = "freelancer"
	VariantGeneric    DashboardVariant = "generic"
)

// Panel is one placeholder card on a dashboard. Actions are not wired to
// anything.
type Panel struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// Dashboard is the role-specific content of the authenticated view.
type Dashboard struct {
	Variant DashboardVariant `json:"variant"`
	Heading string           `json:"heading"`
	Accent  string           `json:"accent"`
	Panels  []Panel          `json:"panels"`
}

// DashboardFor selects the dashboard for a role. Unknown roles get the
// generic placeholder.
func DashboardFor(r Role) Dashboard {
	switch r {
	case RoleHirer:
		return Dashboard{
			Variant: VariantHirer,
			Heading: "Hirer Dashboard",
			Accent:  "blue",
			Panels: []Panel{
				{Title: "Post a Job", Description: "Create and publish job listings to attract top talent", Action: "Post Job"},
				{Title: "Manage Applications", Description: "Review and manage candidate applications", Action: "View Applications"},
				{Title: "Analytics", Description: "Track your hiring performance and metrics", Action: "View Analytics"},
			},
		}
	case RoleApplicant:
		return Dashboard{
			Variant: VariantApplicant,
			Heading: "Job Seeker Dashboard",
			Accent:  "green",
			Panels: []Panel{
				{Title: "Browse Jobs", Description: "Discover new job opportunities tailored for you", Action: "Browse Jobs"},
				{Title: "My Applications", Description: "Track the status of your job applications", Action: "View Applications"},
				{Title: "Profile", Description: "Update your resume and professional profile", Action: "Edit Profile"},
			},
		}
	case RoleFreelancer:
		return Dashboard{
			Variant: VariantFreelancer,
			Heading: "Freelancer Dashboard",
			Accent:  "purple",
			Panels: []Panel{
				{Title: "Find Projects", Description: "Browse and bid on freelance projects", Action: "Find Projects"},
				{Title: "My Proposals", Description: "Track your project proposals and bids", Action: "View Proposals"},
				{Title: "Portfolio", Description: "Showcase your work and build your reputation", Action: "Manage Portfolio"},
			},
		}
	default:
		return Dashboard{
			Variant: VariantGeneric,
			Heading: "Dashboard content",
			Accent:  "gray",
		}
	}
}
