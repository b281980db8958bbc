package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/front-gateway/internal/config"
	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/model"
	"github.com/hoteldesk/front-gateway/internal/session"
)

// testSet wires a full client set against one scripted backend playing all
// four services.
func testSet(t *testing.T, h http.HandlerFunc) (*Set, *session.MemoryStore, *int) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	navigations := 0
	cfg := config.Config{
		UsersBaseURL:        srv.URL,
		RoomsBaseURL:        srv.URL,
		ReservationsBaseURL: srv.URL,
		BillingBaseURL:      srv.URL,
		ReservationsUser:    "svc",
		ReservationsPass:    "secret",
		BillingToken:        "billing-token",
	}
	set := NewSet(cfg, store, func(_ context.Context, target string) {
		navigations++
		assert.Equal(t, "/login", target)
	})
	return set, store, &navigations
}

func seedSession(t *testing.T, store *session.MemoryStore) context.Context {
	t.Helper()
	sess := session.Session{ID: "sess-1", AuthToken: "upstream-tok"}
	require.NoError(t, store.Set(t.Context(), sess))
	return session.NewContext(t.Context(), sess)
}

func TestExpiredTokenClearsSessionAndNavigatesOnce(t *testing.T) {
	set, store, navigations := testSet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer upstream-tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := seedSession(t, store)

	_, err := set.Users.Me(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrSessionExpired)
	assert.Equal(t, 1, *navigations)

	_, err = store.Get(t.Context(), "sess-1")
	assert.ErrorIs(t, err, session.ErrNoSession, "the session is gone")
}

func TestRejectedLoginDoesNotTouchSession(t *testing.T) {
	set, store, navigations := testSet(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	})
	ctx := seedSession(t, store)

	_, err := set.Users.Login(ctx, "ana@example.com", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, httpx.ErrSessionExpired)
	assert.Zero(t, *navigations)

	_, err = store.Get(t.Context(), "sess-1")
	assert.NoError(t, err, "the existing session survives a failed login")
}

func TestReservationsRejectionNeverClearsSession(t *testing.T) {
	// The reservations service authenticates with service credentials; a
	// 401 there means misconfiguration, not an expired user session.
	set, store, navigations := testSet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Authorization"), "Basic ")
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := seedSession(t, store)

	_, err := set.Reservations.List(ctx, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, httpx.ErrSessionExpired)
	assert.Zero(t, *navigations)

	_, err = store.Get(t.Context(), "sess-1")
	assert.NoError(t, err)
}

func TestBillingCarriesStaticBearer(t *testing.T) {
	set, _, _ := testSet(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer billing-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"idFacture": 4, "idReservation": 12, "montantTotal": 1500, "etat": "EMISE"}`))
	})

	inv, err := set.Billing.InvoiceForReservation(t.Context(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(4), inv.ID)
}

func TestRequestWithoutSessionGoesOutBare(t *testing.T) {
	var auth string
	set, _, navigations := testSet(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	// No session in the context: the public room browser works anonymously.
	_, err := set.Rooms.List(t.Context(), model.RoomFilter{})
	require.NoError(t, err)
	assert.Empty(t, auth)
	assert.Zero(t, *navigations)
}
