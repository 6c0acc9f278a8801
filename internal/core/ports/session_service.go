package ports

import (
	"context"

	"github.com/jobportal/client/internal/core/domain"
)

// SessionService owns the client session lifecycle.
type SessionService interface {
	Rehydrate(ctx context.Context) error
	SubmitCredentials(ctx context.Context, creds domain.Credentials) (domain.Snapshot, error)
	Logout(ctx context.Context) error
	Snapshot() domain.Snapshot
}
