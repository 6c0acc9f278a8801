package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jobportal/client/internal/core/ports"
	"github.com/jobportal/client/internal/core/service"
	"github.com/jobportal/client/internal/infrastructure/authapi"
	"github.com/jobportal/client/internal/infrastructure/tokenstore"
	"github.com/jobportal/client/internal/testutil/authservice"
)

type testClient struct {
	t *testing.T
	e *echo.Echo
}

func (tc testClient) do(method, target, body, contentType string) *httptest.ResponseRecorder {
	tc.t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	tc.e.ServeHTTP(rec, req)
	return rec
}

func newTestRouter(t *testing.T) (testClient, *tokenstore.MemoryStore) {
	t.Helper()
	svc := authservice.New("router-secret")
	ts := httptest.NewServer(svc.Handler())
	t.Cleanup(ts.Close)

	client := authapi.NewClient(ts.URL, 0)
	store := tokenstore.NewMemoryStore()
	sessions := service.NewSessionManager(client, store, zerolog.Nop())
	if err := sessions.Rehydrate(context.Background()); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}

	e := NewRouter(Deps{
		Sessions:  sessions,
		Stats:     client,
		Readiness: map[string]ports.Pinger{"token_store": store, "auth_service": client},
		Log:       zerolog.Nop(),
	})
	return testClient{t: t, e: e}, store
}

func TestRouter_SignUpDashboardLogout(t *testing.T) {
	tc, store := newTestRouter(t)

	rec := tc.do(http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Sign Up as Freelancer") {
		t.Fatalf("expected landing page, got %d", rec.Code)
	}

	rec = tc.do(http.MethodGet, "/auth/signup/freelancer", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="name"`) {
		t.Fatalf("expected sign-up form with name field, got %d", rec.Code)
	}

	form := url.Values{"email": {"lee@x.com"}, "password": {"pw"}, "name": {"Lee"}, "user_type": {"freelancer"}}
	rec = tc.do(http.MethodPost, "/auth/signup", form.Encode(), echo.MIMEApplicationForm)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after sign-up, got %d: %s", rec.Code, rec.Body.String())
	}
	if tok, _ := store.Load(context.Background()); tok == "" {
		t.Fatalf("token not persisted")
	}

	rec = tc.do(http.MethodGet, "/", "", "")
	body := rec.Body.String()
	if !strings.Contains(body, "Freelancer Dashboard") || !strings.Contains(body, "Welcome, Lee!") {
		t.Fatalf("expected freelancer dashboard, got: %s", body)
	}

	rec = tc.do(http.MethodGet, "/api/dashboard", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Find Projects") {
		t.Fatalf("expected dashboard json, got %d %s", rec.Code, rec.Body.String())
	}

	rec = tc.do(http.MethodPost, "/logout", "", "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after logout, got %d", rec.Code)
	}
	if tok, _ := store.Load(context.Background()); tok != "" {
		t.Fatalf("token should be cleared after logout")
	}

	rec = tc.do(http.MethodGet, "/api/dashboard", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestRouter_JSONSignInRejected(t *testing.T) {
	tc, store := newTestRouter(t)

	rec := tc.do(http.MethodPost, "/auth/signin", `{"email":"nobody@x.com","password":"pw","user_type":"hirer"}`, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "Incorrect email or password" {
		t.Fatalf("unexpected error message %q", resp.Error)
	}
	if tok, _ := store.Load(context.Background()); tok != "" {
		t.Fatalf("rejected sign-in must not touch the store")
	}
}

func TestRouter_FormSignInRejectedShowsMessageOnForm(t *testing.T) {
	tc, _ := newTestRouter(t)

	form := url.Values{"email": {"nobody@x.com"}, "password": {"hunter22"}, "user_type": {"hirer"}}
	rec := tc.do(http.MethodPost, "/auth/signin", form.Encode(), echo.MIMEApplicationForm)
	body := rec.Body.String()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(body, "Incorrect email or password") || !strings.Contains(body, "Sign In as Hirer") {
		t.Fatalf("expected sign-in form with the failure message, got: %s", body)
	}
	if !strings.Contains(body, `value="nobody@x.com"`) || strings.Contains(body, "hunter22") {
		t.Fatalf("form should keep the email and drop the password: %s", body)
	}

	rec = tc.do(http.MethodGet, "/", "", "")
	if strings.Contains(rec.Body.String(), "Incorrect email or password") {
		t.Fatalf("landing page must not repeat the failure message")
	}
}

func TestRouter_JSONValidationFailure(t *testing.T) {
	tc, _ := newTestRouter(t)

	rec := tc.do(http.MethodPost, "/auth/signup", `{"email":"a@x.com","password":"pw","user_type":"hirer"}`, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "name is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_JSONSignInTwiceConflicts(t *testing.T) {
	tc, _ := newTestRouter(t)

	body := `{"email":"a@x.com","password":"pw","name":"Ana","user_type":"hirer"}`
	if rec := tc.do(http.MethodPost, "/auth/signup", body, echo.MIMEApplicationJSON); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := tc.do(http.MethodPost, "/auth/signin", body, echo.MIMEApplicationJSON); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestRouter_UnknownAuthRoute(t *testing.T) {
	tc, _ := newTestRouter(t)

	if rec := tc.do(http.MethodGet, "/auth/signin/admin", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	tc, _ := newTestRouter(t)

	if rec := tc.do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected liveness 200, got %d", rec.Code)
	}
	rec := tc.do(http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "auth_service") {
		t.Fatalf("expected readiness 200, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Metrics(t *testing.T) {
	svc := authservice.New("metrics-secret")
	ts := httptest.NewServer(svc.Handler())
	defer ts.Close()

	reg := prometheus.NewRegistry()
	client := authapi.NewClient(ts.URL, 0)
	e := NewRouter(Deps{
		Sessions:   service.NewSessionManager(client, tokenstore.NewMemoryStore(), zerolog.Nop()),
		Log:        zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	tc := testClient{t: t, e: e}

	tc.do(http.MethodGet, "/health", "", "")
	rec := tc.do(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "jobportal_http_") {
		t.Fatalf("expected http metrics, got %d", rec.Code)
	}
}
