package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/front-gateway/internal/model"
	"github.com/hoteldesk/front-gateway/internal/session"
	"github.com/hoteldesk/front-gateway/internal/utils"
)

const testSecret = "test-secret-not-for-production"

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "granted") }

// runGuard runs a handler behind RequireRole with the given role already
// set (or not) in the context, as SessionAuth would have done.
func runGuard(t *testing.T, role string, hasRole bool, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if hasRole {
		c.Set("role", role)
	}
	err := RequireRole(allowed...)(okHandler)(c)
	require.NoError(t, err)
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runGuard(t, model.RoleReceptionist, true, model.RoleReceptionist, model.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "granted", rec.Body.String())
}

func TestRequireRoleRedirectsToOwnDashboard(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{model.RoleClient, "/client"},
		{model.RoleReceptionist, "/reception"},
		{model.RoleAdmin, "/admin"},
		{"SOMETHING_ELSE", "/login"},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			allowed := model.RoleAdmin
			if tc.role == model.RoleAdmin {
				allowed = model.RoleClient
			}
			rec := runGuard(t, tc.role, true, allowed)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.want, rec.Header().Get("Location"))
		})
	}
}

func TestRequireRoleWithoutSession(t *testing.T) {
	rec := runGuard(t, "", false, model.RoleAdmin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func newSessionContext(t *testing.T, e *echo.Echo, target string, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionAuthLoadsSession(t *testing.T) {
	store := session.NewMemoryStore()
	sess := session.Session{
		ID:        "sess-1",
		AuthToken: "upstream",
		Profile:   session.Profile{ID: 3, Role: model.RoleClient, Email: "ana@example.com"},
	}
	require.NoError(t, store.Set(t.Context(), sess))

	tok, err := utils.NewSessionToken(testSecret, "sess-1", model.RoleClient, time.Hour)
	require.NoError(t, err)

	e := echo.New()
	c, rec := newSessionContext(t, e, "/v1/me", tok.Token)

	handler := SessionAuth(testSecret, store)(func(c echo.Context) error {
		got, ok := CurrentSession(c)
		require.True(t, ok)
		assert.Equal(t, sess, got)

		// The session must also ride the request context for the clients.
		fromCtx, ok := session.FromContext(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, "upstream", fromCtx.AuthToken)
		return c.String(http.StatusOK, "in")
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuthRedirectsWithoutToken(t *testing.T) {
	e := echo.New()
	c, rec := newSessionContext(t, e, "/v1/me", "")
	handler := SessionAuth(testSecret, session.NewMemoryStore())(okHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSessionAuthRedirectsOnClearedSession(t *testing.T) {
	// Valid token, but the session was cleared server-side (logout or an
	// upstream 401): back to login.
	tok, err := utils.NewSessionToken(testSecret, "sess-gone", model.RoleClient, time.Hour)
	require.NoError(t, err)

	e := echo.New()
	c, rec := newSessionContext(t, e, "/v1/me", tok.Token)
	handler := SessionAuth(testSecret, session.NewMemoryStore())(okHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestSessionAuthAcceptsCookie(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), session.Session{ID: "sess-2", AuthToken: "tok"}))

	tok, err := utils.NewSessionToken(testSecret, "sess-2", model.RoleClient, time.Hour)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionAuth(testSecret, store)(okHandler)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
