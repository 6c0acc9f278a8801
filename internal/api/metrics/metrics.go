// Package metrics defines and registers the custom Prometheus metrics of the
// jobportal client. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register with the default Prometheus registry at package
// init through promauto.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jobportal/client/internal/core/domain"
)

const namespace = "jobportal"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts credential submissions.
// Labels:
//   - mode: "signin" or "signup"
//   - result: see AuthResult
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of credential submissions, by mode and result.",
	},
	[]string{"mode", "result"},
)

// AuthRequestDuration measures a submission end-to-end, including the call
// to the Authentication Service and persisting the token.
var AuthRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_request_duration_seconds",
		Help:      "Duration of credential submissions.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"mode"},
)

// RehydrationsTotal counts startup rehydrations.
// Label:
//   - result: "restored" or "anonymous"
var RehydrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rehydrations_total",
		Help:      "Total number of startup session rehydrations, by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionState is 1 for the current session state and 0 for the others.
var SessionState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_state",
		Help:      "Current session state (1 = active).",
	},
	[]string{"state"},
)

// SessionTransitionsTotal counts state transitions by target state.
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by target state.",
	},
	[]string{"state"},
)

var sessionStates = []domain.SessionState{
	domain.StateAnonymous,
	domain.StateAuthenticating,
	domain.StateAuthenticated,
	domain.StateRehydrationPending,
}

// ObserveSession records a transition. It is meant to be registered with
// the session manager's Subscribe.
func ObserveSession(s domain.Snapshot) {
	for _, st := range sessionStates {
		v := 0.0
		if st == s.State {
			v = 1
		}
		SessionState.WithLabelValues(string(st)).Set(v)
	}
	SessionTransitionsTotal.WithLabelValues(string(s.State)).Inc()
}

// AuthResult classifies a submission error into a bounded label value.
func AuthResult(err error) string {
	var af *domain.AuthFailure
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrSessionBusy), errors.Is(err, domain.ErrAlreadyAuthenticated):
		return "conflict"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	case errors.As(err, &af):
		return "rejected"
	default:
		return "error"
	}
}
