// Package authservice is an in-process stand-in for the JobPortal
// Authentication Service. It speaks the same HTTP/JSON contract (bcrypt
// password hashes, HS256 bearer tokens, {"detail": ...} errors) and keeps
// users in memory. Tests mount Handler on an httptest.Server.
package authservice

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobportal/client/internal/core/domain"
)

const defaultTTL = 30 * time.Minute

const unauthorizedDetail = "Could not validate credentials"

type user struct {
	profile      domain.Profile
	passwordHash []byte
}

// Service is the fake Authentication Service.
type Service struct {
	e      *echo.Echo
	secret []byte
	ttl    time.Duration

	mu      sync.RWMutex
	byEmail map[string]*user
	byID    map[domain.UserID]*user
	hits    map[string]int
}

// New returns a Service signing tokens with secret.
func New(secret string) *Service {
	s := &Service{
		e:       echo.New(),
		secret:  []byte(secret),
		ttl:     defaultTTL,
		byEmail: make(map[string]*user),
		byID:    make(map[domain.UserID]*user),
		hits:    make(map[string]int),
	}
	s.e.HideBanner = true
	s.e.HTTPErrorHandler = detailErrorHandler
	s.e.Use(s.countHits)

	s.e.GET("/api/health", s.health)
	s.e.GET("/api/stats", s.stats)
	s.e.POST("/api/signup", s.signUp)
	s.e.POST("/api/signin", s.signIn)
	s.e.GET("/api/profile", s.profile, s.bearer)
	return s
}

// Handler returns the HTTP handler to mount.
func (s *Service) Handler() http.Handler {
	return s.e
}

// Hits returns how many requests reached path.
func (s *Service) Hits(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[path]
}

// Seed registers a user directly and returns its profile.
func (s *Service) Seed(name, email, password string, role domain.Role) (domain.Profile, error) {
	return s.register(name, email, password, role)
}

// IssueToken signs a token for id expiring after ttl. A negative ttl yields
// an already expired token.
func (s *Service) IssueToken(id domain.UserID, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": id.String(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) register(name, email, password string, role domain.Role) (domain.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return domain.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return domain.Profile{}, echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	}
	u := &user{
		profile: domain.Profile{
			ID:        domain.StringID(uuid.NewString()),
			Name:      name,
			Email:     email,
			UserType:  role,
			CreatedAt: time.Now().UTC().Format("2006-01-02T15:04:05.000000"),
		},
		passwordHash: hash,
	}
	s.byEmail[email] = u
	s.byID[u.profile.ID] = u
	return u.profile, nil
}

type signUpRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	UserType domain.Role `json:"user_type"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        domain.Profile `json:"user"`
}

func (s *Service) signUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "name, email and password are required")
	}
	if !req.UserType.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Invalid user type. Must be 'hirer', 'applicant', or 'freelancer'")
	}

	profile, err := s.register(req.Name, req.Email, req.Password, req.UserType)
	if err != nil {
		return err
	}
	return s.respondWithToken(c, profile)
}

func (s *Service) signIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}

	s.mu.RLock()
	u, ok := s.byEmail[req.Email]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}
	return s.respondWithToken(c, u.profile)
}

func (s *Service) respondWithToken(c echo.Context, profile domain.Profile) error {
	token, err := s.IssueToken(profile.ID, s.ttl)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: profile})
}

func (s *Service) profile(c echo.Context) error {
	id, _ := c.Get("sub").(string)

	s.mu.RLock()
	u, ok := s.byID[domain.StringID(id)]
	s.mu.RUnlock()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedDetail)
	}
	return c.JSON(http.StatusOK, u.profile)
}

func (s *Service) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) stats(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[domain.Role]int{}
	for _, u := range s.byID {
		counts[u.profile.UserType]++
	}
	return c.JSON(http.StatusOK, map[string]int{
		"total_users": len(s.byID),
		"hirers":      counts[domain.RoleHirer],
		"applicants":  counts[domain.RoleApplicant],
		"freelancers": counts[domain.RoleFreelancer],
	})
}

// bearer validates the HS256 token and stores its subject in the context.
func (s *Service) bearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return echo.NewHTTPError(http.StatusForbidden, "Not authenticated")
		}

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !tkn.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedDetail)
		}
		sub, _ := claims.GetSubject()
		if sub == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedDetail)
		}
		c.Set("sub", sub)
		return next(c)
	}
}

func (s *Service) countHits(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.hits[c.Request().URL.Path]++
		s.mu.Unlock()
		return next(c)
	}
}

// detailErrorHandler renders errors as {"detail": "..."}.
func detailErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Internal Server Error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	}
	_ = c.JSON(code, map[string]string{"detail": msg})
}
