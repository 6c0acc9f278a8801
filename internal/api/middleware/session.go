package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/client/internal/api/handler"
	"github.com/jobportal/client/internal/core/domain"
)

// SnapshotSource exposes the current session.
type SnapshotSource interface {
	Snapshot() domain.Snapshot
}

// RequireSession lets the request through only when the session is
// authenticated, and, if roles are given, only for those roles. The profile
// is injected into the context under handler.ProfileKey.
func RequireSession(sessions SnapshotSource, roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			if !snap.Authenticated() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrNotAuthenticated.Error()})
			}
			if len(allowed) > 0 {
				if _, ok := allowed[snap.Profile.UserType]; !ok {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
				}
			}
			c.Set(handler.ProfileKey, *snap.Profile)
			return next(c)
		}
	}
}
