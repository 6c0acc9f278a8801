package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jobportal/client/internal/core/domain"
)

func TestAuthResult(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fmt.Errorf("%w: email is required", domain.ErrValidation), "invalid"},
		{domain.ErrSessionBusy, "conflict"},
		{domain.ErrAlreadyAuthenticated, "conflict"},
		{&domain.AuthFailure{Reason: domain.GenericAuthFailure, Err: fmt.Errorf("dial: %w", domain.ErrTransport)}, "transport"},
		{&domain.AuthFailure{Status: 401, Reason: "Incorrect email or password", Err: domain.ErrAuthRejected}, "rejected"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range cases {
		if got := AuthResult(tc.err); got != tc.want {
			t.Fatalf("AuthResult(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestObserveSession(t *testing.T) {
	before := testutil.ToFloat64(SessionTransitionsTotal.WithLabelValues(string(domain.StateAuthenticated)))

	ObserveSession(domain.Snapshot{State: domain.StateAuthenticated})

	if got := testutil.ToFloat64(SessionState.WithLabelValues(string(domain.StateAuthenticated))); got != 1 {
		t.Fatalf("expected authenticated gauge 1, got %v", got)
	}
	if got := testutil.ToFloat64(SessionState.WithLabelValues(string(domain.StateAnonymous))); got != 0 {
		t.Fatalf("expected anonymous gauge 0, got %v", got)
	}
	after := testutil.ToFloat64(SessionTransitionsTotal.WithLabelValues(string(domain.StateAuthenticated)))
	if after != before+1 {
		t.Fatalf("expected transition counter to grow by 1, got %v -> %v", before, after)
	}
}
