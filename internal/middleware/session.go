package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/session"
	"github.com/hoteldesk/front-gateway/internal/utils"
)

// SessionCookie is the fallback carrier for the gateway session token when
// the dashboard cannot set an Authorization header (full-page navigations,
// PDF downloads).
const SessionCookie = "gw_session"

// SessionAuth returns an Echo middleware that resolves the gateway session
// token (Authorization: Bearer or the session cookie), loads the session
// from the store and injects it into both the Echo context and the
// request's context.Context so the service clients can reach the upstream
// bearer token.  Requests without a valid session are redirected to the
// login view; this is advisory routing, the backends re-authorize every
// call.
func SessionAuth(secret string, store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				if cookie, err := c.Cookie(SessionCookie); err == nil {
					raw = cookie.Value
				}
			}
			if raw == "" {
				return c.Redirect(303, "/login")
			}

			sid, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.Redirect(303, "/login")
			}

			sess, err := store.Get(c.Request().Context(), sid)
			if err != nil {
				// Covers ErrNoSession (logged out or expired upstream) and
				// store failures alike: back to login.
				return c.Redirect(303, "/login")
			}

			// Make the session reachable from handlers and, through the
			// request context, from the service clients.
			c.Set("session", sess)
			c.Set("role", sess.Profile.Role)
			c.Set("user_id", sess.Profile.ID)
			ctx := session.NewContext(c.Request().Context(), sess)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// CurrentSession returns the session injected by SessionAuth.  The second
// return is false on routes that skipped the middleware.
func CurrentSession(c echo.Context) (session.Session, bool) {
	s, ok := c.Get("session").(session.Session)
	return s, ok
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
