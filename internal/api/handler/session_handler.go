package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/client/internal/api/metrics"
	"github.com/jobportal/client/internal/core/domain"
	"github.com/jobportal/client/internal/core/ports"
	"github.com/jobportal/client/internal/core/service"
)

const statsTimeout = 2 * time.Second

// SessionHandler serves the pages and JSON endpoints backed by the single
// session of this client.
type SessionHandler struct {
	sessions ports.SessionService
	stats    ports.StatsProvider
	log      zerolog.Logger
}

// NewSessionHandler builds the handler. stats may be nil, in which case the
// landing page shows no platform numbers.
func NewSessionHandler(sessions ports.SessionService, stats ports.StatsProvider, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, stats: stats, log: log}
}

// Home renders the landing page or the dashboard for the current session.
func (h *SessionHandler) Home(c echo.Context) error {
	view := service.ResolveView(h.sessions.Snapshot())
	if view.Kind == service.ViewDashboard {
		return c.Render(http.StatusOK, "dashboard", dashboardPage{
			Welcome:   view.Welcome,
			Profile:   view.Profile,
			Dashboard: view.Dashboard,
		})
	}
	return c.Render(http.StatusOK, "landing", newLandingPage(h.platformStats(c.Request().Context())))
}

func (h *SessionHandler) platformStats(ctx context.Context) *ports.PlatformStats {
	if h.stats == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()
	stats, err := h.stats.Stats(ctx)
	if err != nil {
		h.log.Debug().Err(err).Msg("platform stats unavailable")
		return nil
	}
	return stats
}

// AuthForm renders the credential form for one mode and role.
func (h *SessionHandler) AuthForm(c echo.Context) error {
	mode := domain.AuthMode(c.Param("mode"))
	role := domain.Role(c.Param("role"))
	if !mode.Valid() || !role.Valid() {
		return echo.ErrNotFound
	}
	if h.sessions.Snapshot().Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "auth", newAuthPage(mode, role))
}

// SignIn submits existing-account credentials.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	return h.submit(c, domain.ModeSignIn)
}

// SignUp registers a new account and signs it in.
//
// @Summary      Sign up
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email, password, name and user type"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	return h.submit(c, domain.ModeSignUp)
}

func (h *SessionHandler) submit(c echo.Context, mode domain.AuthMode) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return h.rejectSubmission(c, mode, req, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	start := time.Now()
	snap, err := h.sessions.SubmitCredentials(c.Request().Context(), req.credentials(mode))
	metrics.AuthRequestDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	metrics.AuthAttemptsTotal.WithLabelValues(string(mode), metrics.AuthResult(err)).Inc()
	if err != nil {
		return h.rejectSubmission(c, mode, req, err)
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, newSessionResponse(snap))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// rejectSubmission hands JSON callers to the error handler and re-renders
// the form for browsers, keeping what the user typed except the password.
func (h *SessionHandler) rejectSubmission(c echo.Context, mode domain.AuthMode, req credentialsRequest, err error) error {
	if wantsJSON(c) {
		return err
	}
	if errors.Is(err, domain.ErrAlreadyAuthenticated) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	code, _, ok := ErrorStatus(err)
	if !ok {
		return err
	}
	page := newAuthPage(mode, domain.Role(req.UserType))
	page.Email = req.Email
	page.Name = req.Name
	page.Error = domain.UserMessage(err)
	return c.Render(code, "auth", page)
}

// Logout discards the local session.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("logout left a token in the store")
	}
	metrics.LogoutsTotal.Inc()

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, newSessionResponse(h.sessions.Snapshot()))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Session reports the current session state.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, newSessionResponse(h.sessions.Snapshot()))
}

// Dashboard returns the dashboard for the authenticated user.
//
// @Summary      Role dashboard
// @Tags         session
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/dashboard [get]
func (h *SessionHandler) Dashboard(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDashboardResponse(service.DashboardView(profile)))
}

func wantsJSON(c echo.Context) bool {
	req := c.Request()
	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
