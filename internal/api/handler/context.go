package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// queryUsername reads the ?username= parameter every document route
// requires and returns it in canonical form.
func queryUsername(c echo.Context) (string, error) {
	raw := c.QueryParam("username")
	if strings.TrimSpace(raw) == "" {
		return "", domain.Invalid("Username is required.")
	}
	return domain.CanonicalUsername(raw), nil
}
