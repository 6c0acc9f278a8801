package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/jobportal/client/docs"
	"github.com/jobportal/client/internal/api/handler"
	"github.com/jobportal/client/internal/api/middleware"
	"github.com/jobportal/client/internal/core/ports"
	"github.com/jobportal/client/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Sessions ports.SessionService
	// Stats feeds the landing page; nil hides the numbers.
	Stats ports.StatsProvider
	// Readiness maps dependency names to their pingers for /health/ready.
	Readiness map[string]ports.Pinger
	Log       zerolog.Logger
	// Registerer and Gatherer back /metrics. Both nil disables it.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "jobportal",
			Subsystem:  "http",
			Registerer: d.Registerer,
		}))
	}

	// --- Pages and session ---
	sessionHandler := handler.NewSessionHandler(d.Sessions, d.Stats, d.Log)

	e.GET("/", sessionHandler.Home)
	e.GET("/auth/:mode/:role", sessionHandler.AuthForm)
	e.POST("/auth/signin", sessionHandler.SignIn)
	e.POST("/auth/signup", sessionHandler.SignUp)
	e.POST("/logout", sessionHandler.Logout)

	apiGroup := e.Group("/api")
	apiGroup.GET("/session", sessionHandler.Session)
	apiGroup.GET("/dashboard", sessionHandler.Dashboard, middleware.RequireSession(d.Sessions))

	// --- Health checks ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics and docs ---
	if d.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
