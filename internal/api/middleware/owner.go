package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// Owner restricts a route to the user named in the given query parameter.
// It only applies when Auth put a username into the context. Both names are
// compared in their storage form.
func Owner(queryParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenUser, _ := c.Get(ContextUsername).(string)
			if tokenUser == "" {
				return next(c)
			}
			if domain.CanonicalUsername(tokenUser) != domain.CanonicalUsername(c.QueryParam(queryParam)) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
