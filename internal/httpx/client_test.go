package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnauthorizedInvokesHookExactlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	calls := 0
	c := New(ClientConfig{
		Name:           "users",
		BaseURL:        srv.URL,
		OnUnauthorized: func(context.Context) { calls++ },
		PublicPaths:    []string{"/auth/login"},
	})

	_, err := c.Do(context.Background(), "GET", "/auth/me", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, calls)

	// The underlying status stays reachable through the chain.
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusUnauthorized, herr.Status)
}

func TestUnauthorizedOnPublicPathLeavesSessionAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
	}))
	defer srv.Close()

	calls := 0
	c := New(ClientConfig{
		Name:           "users",
		BaseURL:        srv.URL,
		OnUnauthorized: func(context.Context) { calls++ },
		PublicPaths:    []string{"/auth/login"},
	})

	_, err := c.Do(context.Background(), "POST", "/auth/login", nil, map[string]string{"email": "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, calls, "a rejected login must not clear the session")

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "bad credentials", herr.Message())
}

func TestForbiddenTreatedLikeUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	calls := 0
	c := New(ClientConfig{
		Name:           "users",
		BaseURL:        srv.URL,
		OnUnauthorized: func(context.Context) { calls++ },
	})

	_, err := c.Do(context.Background(), "GET", "/admin/users", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, calls)
}

func TestForbiddenWithoutHookOnlyLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(ClientConfig{Name: "reservations", BaseURL: srv.URL})
	_, err := c.Do(context.Background(), "GET", "/reservations", nil, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
}

func TestUnauthorizedWithoutHookIsPlainHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(ClientConfig{Name: "reservations", BaseURL: srv.URL})
	_, err := c.Do(context.Background(), "GET", "/reservations", nil, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
}

func TestValidationErrorParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid","errors":{"numero":["Le numero est obligatoire."]}}`))
	}))
	defer srv.Close()

	c := New(ClientConfig{Name: "rooms", BaseURL: srv.URL})
	_, err := c.Do(context.Background(), "POST", "/chambres", nil, map[string]string{})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid", verr.Message)
	assert.Equal(t, []string{"Le numero est obligatoire."}, verr.Fields["numero"])
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // no one listening any more

	c := New(ClientConfig{Name: "rooms", BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.Do(context.Background(), "GET", "/chambres", nil, nil)

	var nerr *NetworkError
	require.True(t, errors.As(err, &nerr))
}

func TestCredentialPolicies(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	basic := New(ClientConfig{Name: "reservations", BaseURL: srv.URL, Credentials: BasicAuth("svc", "secret")})
	_, err := basic.Do(context.Background(), "GET", "/reservations", nil, nil)
	require.NoError(t, err)
	assert.Contains(t, auth, "Basic ")

	static := New(ClientConfig{Name: "billing", BaseURL: srv.URL, Credentials: StaticBearer("tok-123")})
	_, err = static.Do(context.Background(), "GET", "/paiements", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", auth)

	fromSession := New(ClientConfig{Name: "users", BaseURL: srv.URL, Credentials: BearerFromSession(
		func(context.Context) (string, bool) { return "", false },
	)})
	_, err = fromSession.Do(context.Background(), "GET", "/auth/me", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, auth, "no session means the request goes out bare")
}

func TestHTTPErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"Chambre introuvable"}`, "Chambre introuvable"},
		{`{"error":"not found"}`, "not found"},
		{`plain text`, "plain text"},
	}
	for _, tc := range cases {
		herr := &HTTPError{Status: 404, Body: []byte(tc.body)}
		assert.Equal(t, tc.want, herr.Message())
	}
}
