package domain

import "strings"

// Role is the account category that selects the dashboard variant.
type Role string

const (
	RoleHirer      Role = "hirer"
	RoleApplicant  Role = "applicant"
	RoleFreelancer Role = "freelancer"
)

// Roles lists the known roles in display order.
var Roles = []Role{RoleHirer, RoleApplicant, RoleFreelancer}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHirer, RoleApplicant, RoleFreelancer:
		return true
	}
	return false
}

// Title returns the role capitalised for headings ("Hirer").
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}
