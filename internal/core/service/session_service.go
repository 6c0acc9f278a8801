package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jobportal/client/internal/core/domain"
	"github.com/jobportal/client/internal/core/ports"
)

// SessionManager implements the client session lifecycle: silent
// rehydration at start, credential submission, and local logout.
//
// The mutex guards state only; network calls run unlocked while the state
// reads Authenticating or RehydrationPending, which rejects overlapping
// submissions.
type SessionManager struct {
	gateway  ports.AuthGateway
	store    ports.TokenStore
	validate *validator.Validate
	log      zerolog.Logger

	mu         sync.Mutex
	state      domain.SessionState
	token      string
	profile    *domain.Profile
	rehydrated bool
	epoch      uint64 // bumped by Logout; stale in-flight results are dropped
	observers  []func(domain.Snapshot)
}

// NewSessionManager returns a SessionManager in the Anonymous state.
func NewSessionManager(gateway ports.AuthGateway, store ports.TokenStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		gateway:  gateway,
		store:    store,
		validate: newCredentialsValidator(),
		log:      log,
		state:    domain.StateAnonymous,
	}
}

// Subscribe registers fn to be called with the new snapshot after every
// state transition. Observers run on the caller's goroutine, unlocked.
func (m *SessionManager) Subscribe(fn func(domain.Snapshot)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// Snapshot returns a copy of the current session.
func (m *SessionManager) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *SessionManager) snapshotLocked() domain.Snapshot {
	s := domain.Snapshot{State: m.state, Token: m.token}
	if m.profile != nil {
		p := *m.profile
		s.Profile = &p
	}
	return s
}

// Rehydrate restores the session from the persisted token. It is meant to
// run once at process start; later calls return domain.ErrRehydrationDone.
//
// Failures are silent: an expired token and an unreachable service are
// handled the same way, by discarding the stored token and staying
// Anonymous.
func (m *SessionManager) Rehydrate(ctx context.Context) error {
	m.mu.Lock()
	if m.rehydrated {
		m.mu.Unlock()
		return domain.ErrRehydrationDone
	}
	m.rehydrated = true
	if m.state != domain.StateAnonymous {
		m.mu.Unlock()
		return domain.ErrSessionBusy
	}
	// Pending from here on, so a submission racing the store read is
	// refused instead of being overwritten.
	m.state = domain.StateRehydrationPending
	epoch := m.epoch
	m.mu.Unlock()

	token, err := m.store.Load(ctx)
	if err != nil || token == "" {
		if err != nil {
			m.log.Warn().Err(err).Msg("token store unreadable, starting anonymous")
		} else {
			m.log.Debug().Msg("no stored token, starting anonymous")
		}
		m.mu.Lock()
		if m.epoch == epoch {
			m.state = domain.StateAnonymous
		}
		m.mu.Unlock()
		return nil
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.log.Debug().Msg("session changed during rehydration, result dropped")
		return nil
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)

	profile, fetchErr := m.gateway.Profile(ctx, token)

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.log.Debug().Msg("session changed during rehydration, result dropped")
		return nil
	}
	if fetchErr != nil {
		m.state = domain.StateAnonymous
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn().Err(err).Msg("failed to discard stored token")
		}
		snap = m.snapshotLocked()
		m.mu.Unlock()
		m.log.Warn().Err(fetchErr).Msg("session rehydration failed, stored token discarded")
		m.notify(snap)
		return nil
	}
	p := *profile
	m.token = token
	m.profile = &p
	m.state = domain.StateAuthenticated
	snap = m.snapshotLocked()
	m.mu.Unlock()

	m.log.Info().Str("user_type", string(p.UserType)).Msg("session rehydrated")
	m.notify(snap)
	return nil
}

// SubmitCredentials signs in or signs up. Validation failures return an
// error wrapping domain.ErrValidation without contacting the service.
// Service failures return a *domain.AuthFailure carrying the message for
// the user; the token store is not touched.
func (m *SessionManager) SubmitCredentials(ctx context.Context, creds domain.Credentials) (domain.Snapshot, error) {
	if err := validateCredentials(m.validate, creds); err != nil {
		return m.Snapshot(), err
	}

	m.mu.Lock()
	switch m.state {
	case domain.StateAuthenticated:
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, domain.ErrAlreadyAuthenticated
	case domain.StateAuthenticating, domain.StateRehydrationPending:
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, domain.ErrSessionBusy
	}
	m.state = domain.StateAuthenticating
	epoch := m.epoch
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)

	result, err := m.send(ctx, creds)

	m.mu.Lock()
	if m.epoch != epoch {
		snap = m.snapshotLocked()
		m.mu.Unlock()
		return snap, domain.ErrSessionBusy
	}
	if err != nil {
		m.state = domain.StateAnonymous
		snap = m.snapshotLocked()
		m.mu.Unlock()
		m.log.Info().Err(err).Str("mode", string(creds.Mode)).Msg("authentication failed")
		m.notify(snap)
		return snap, asAuthFailure(err)
	}
	if err := m.store.Save(ctx, result.AccessToken); err != nil {
		m.state = domain.StateAnonymous
		snap = m.snapshotLocked()
		m.mu.Unlock()
		m.log.Error().Err(err).Msg("failed to persist session token")
		m.notify(snap)
		return snap, &domain.AuthFailure{
			Reason: domain.GenericAuthFailure,
			Err:    fmt.Errorf("persist token: %w", err),
		}
	}
	p := result.User
	m.token = result.AccessToken
	m.profile = &p
	m.state = domain.StateAuthenticated
	snap = m.snapshotLocked()
	m.mu.Unlock()

	m.log.Info().
		Str("mode", string(creds.Mode)).
		Str("user_type", string(p.UserType)).
		Msg("authenticated")
	m.notify(snap)
	return snap, nil
}

func (m *SessionManager) send(ctx context.Context, creds domain.Credentials) (*ports.AuthResult, error) {
	if creds.Mode == domain.ModeSignUp {
		return m.gateway.SignUp(ctx, ports.SignUpRequest{
			Email:    creds.Email,
			Password: creds.Password,
			Name:     creds.Name,
			UserType: creds.Role,
		})
	}
	return m.gateway.SignIn(ctx, ports.SignInRequest{
		Email:    creds.Email,
		Password: creds.Password,
	})
}

// Logout discards the token and profile. It never calls the service and
// is a no-op when already Anonymous, apart from making sure the slot is
// empty.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.epoch++
	wasAuthenticated := m.state == domain.StateAuthenticated
	m.token = ""
	m.profile = nil
	m.state = domain.StateAnonymous
	err := m.store.Clear(ctx)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if wasAuthenticated {
		m.log.Info().Msg("logged out")
	}
	m.notify(snap)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (m *SessionManager) notify(snap domain.Snapshot) {
	m.mu.Lock()
	observers := append([]func(domain.Snapshot){}, m.observers...)
	m.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}

// asAuthFailure guarantees the caller gets a *domain.AuthFailure.
func asAuthFailure(err error) error {
	var af *domain.AuthFailure
	if errors.As(err, &af) {
		return err
	}
	return &domain.AuthFailure{Reason: domain.GenericAuthFailure, Err: err}
}
