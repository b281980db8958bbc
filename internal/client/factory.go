package client

import (
	"context"
	"log"

	"github.com/hoteldesk/front-gateway/internal/config"
	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/session"
)

// Navigator sends the browser somewhere, used when a 401 invalidates the
// session.  The production navigator just logs; the HTTP error mapper
// performs the actual redirect when it sees ErrSessionExpired.  Tests
// inject their own to count invocations.
type Navigator func(ctx context.Context, target string)

// LogNavigator is the production Navigator.
func LogNavigator(_ context.Context, target string) {
	log.Printf("client: session invalidated, redirecting to %s", target)
}

// Set bundles the four service bindings with their credential policies:
// session bearer for users and rooms (401/403 clears the session), the
// fixed Basic pair for reservations and the fixed long-lived bearer for
// billing (both log-only on rejection, their credentials are not
// user-derived).
type Set struct {
	Users        *Users
	Rooms        *Rooms
	Reservations *Reservations
	Billing      *Billing
}

// NewSet builds the bindings from configuration.  store is needed so a 401
// can clear the offending session before the navigator fires.
func NewSet(cfg config.Config, store session.Store, navigate Navigator) *Set {
	if navigate == nil {
		navigate = LogNavigator
	}

	sessionToken := func(ctx context.Context) (string, bool) {
		s, ok := session.FromContext(ctx)
		return s.AuthToken, ok
	}

	// Invoked at most once per failing request, by contract of the
	// httpx unauthorized policy.
	expire := func(ctx context.Context) {
		if s, ok := session.FromContext(ctx); ok {
			if err := store.Clear(ctx, s.ID); err != nil {
				log.Printf("client: clearing session %s failed: %v", s.ID, err)
			}
		}
		navigate(ctx, "/login")
	}

	return &Set{
		Users: NewUsers(httpx.New(httpx.ClientConfig{
			Name:           "users",
			BaseURL:        cfg.UsersBaseURL,
			Timeout:        cfg.RequestTimeout,
			Credentials:    httpx.BearerFromSession(sessionToken),
			OnUnauthorized: expire,
			PublicPaths:    PublicAuthPaths,
		})),
		Rooms: NewRooms(httpx.New(httpx.ClientConfig{
			Name:           "rooms",
			BaseURL:        cfg.RoomsBaseURL,
			Timeout:        cfg.RequestTimeout,
			Credentials:    httpx.BearerFromSession(sessionToken),
			OnUnauthorized: expire,
		})),
		Reservations: NewReservations(httpx.New(httpx.ClientConfig{
			Name:        "reservations",
			BaseURL:     cfg.ReservationsBaseURL,
			Timeout:     cfg.RequestTimeout,
			Credentials: httpx.BasicAuth(cfg.ReservationsUser, cfg.ReservationsPass),
		})),
		Billing: NewBilling(httpx.New(httpx.ClientConfig{
			Name:        "billing",
			BaseURL:     cfg.BillingBaseURL,
			Timeout:     cfg.RequestTimeout,
			Credentials: httpx.StaticBearer(cfg.BillingToken),
		})),
	}
}
