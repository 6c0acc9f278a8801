package ports

import "context"

// TokenStore is the durable slot holding the session token.
//
// Load returns "" with a nil error when the slot is empty. Clear on an empty
// slot is a no-op.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Pinger is implemented by dependencies that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
