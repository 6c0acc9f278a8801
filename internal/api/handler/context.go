package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/client/internal/core/domain"
)

// ProfileKey is where the session middleware stores the authenticated
// profile on the echo context.
const ProfileKey = "profile"

// ctxProfile returns the profile injected by the session middleware. A
// missing value means the route was mounted without the gate.
func ctxProfile(c echo.Context) (domain.Profile, error) {
	p, ok := c.Get(ProfileKey).(domain.Profile)
	if !ok {
		return domain.Profile{}, echo.NewHTTPError(http.StatusUnauthorized, domain.ErrNotAuthenticated.Error())
	}
	return p, nil
}
