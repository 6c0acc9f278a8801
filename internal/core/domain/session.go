package domain

// SessionState is a state of the client session lifecycle.
type SessionState string

const (
	StateAnonymous          SessionState = "anonymous"
	StateAuthenticating     SessionState = "authenticating"
	StateAuthenticated      SessionState = "authenticated"
	StateRehydrationPending SessionState = "rehydration_pending"
)

// Snapshot is an immutable copy of the session at one instant.
// Profile is non-nil only together with a non-empty Token.
type Snapshot struct {
	State   SessionState
	Token   string
	Profile *Profile
}

// Authenticated reports whether the snapshot carries an identity.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.Profile != nil
}
