package middleware // middleware provides shared request processing for handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// signed-in user has one of the specified roles.  A mismatch does not 403:
// the visitor is sent to their own role's dashboard (admins to /admin,
// receptionists to /reception, clients to /client, anything unknown back
// to /login).  It assumes SessionAuth already stored the role under
// "role".
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			role, ok := v.(string)
			if !ok {
				return c.Redirect(303, "/login")
			}
			if !allowed[role] {
				return c.Redirect(303, model.HomePath(role))
			}
			return next(c)
		}
	}
}
