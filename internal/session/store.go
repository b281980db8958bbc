// Package session holds the gateway's server-side sessions: one bearer
// token for the users/rooms services plus a cached profile of the signed-in
// user.  Sessions are created on login, overwritten on refresh and removed
// on logout or when an upstream request comes back unauthorized.  There are
// no local expiry timers; token validity is delegated to the next failing
// upstream request.
package session

import (
	"context"
	"errors"

	"github.com/hoteldesk/front-gateway/internal/model"
)

// ErrNoSession is returned when no session exists for the given id.  It is
// the "missing token" sentinel: callers treat it as "not authenticated",
// never as a failure.
var ErrNoSession = errors.New("session: not found")

// Profile is the cached subset of the users-service account that the
// dashboards need between requests.  It is written once at login and only
// refreshed when the profile endpoints are called.
type Profile struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// Session binds a session id (held by the browser in a cookie) to the
// upstream bearer token and the cached profile.
type Session struct {
	ID        string  `json:"id"`
	AuthToken string  `json:"auth_token"`
	Profile   Profile `json:"profile"`
}

// IsAuthenticated reports whether the session carries a token.  No expiry
// check happens here.
func (s Session) IsAuthenticated() bool { return s.AuthToken != "" }

// ProfileFromUser maps a users-service record into the cached profile.
func ProfileFromUser(u model.User) Profile {
	return Profile{ID: u.ID, DisplayName: u.DisplayName(), Email: u.Email, Role: u.Role}
}

// Store persists sessions.  Implementations must be safe for concurrent
// use; the gateway serves one goroutine per request.
type Store interface {
	// Set creates or overwrites the session under its ID.
	Set(ctx context.Context, s Session) error
	// Get returns the session for id, or ErrNoSession.
	Get(ctx context.Context, id string) (Session, error)
	// Clear removes the session and its cached profile.  Clearing a
	// missing session is not an error.
	Clear(ctx context.Context, id string) error
}
