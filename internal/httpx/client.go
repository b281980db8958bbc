package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource yields the bearer token for the current request, typically
// the one cached in the caller's session.  ok is false when no token is
// available; the request then goes out unauthenticated and the backend
// decides.
type TokenSource func(ctx context.Context) (token string, ok bool)

// CredentialFunc attaches credentials to an outgoing request.  One of the
// three policies below is bound into each Client at construction.
type CredentialFunc func(ctx context.Context, req *http.Request)

// BearerFromSession attaches "Authorization: Bearer <token>" using the
// session's token.  Requests without a session are sent bare.
func BearerFromSession(tokens TokenSource) CredentialFunc {
	return func(ctx context.Context, req *http.Request) {
		if token, ok := tokens(ctx); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// BasicAuth attaches a fixed username/password pair.  The pair is service
// configuration, not user-derived, so a rejection never touches the
// session.
func BasicAuth(username, password string) CredentialFunc {
	return func(_ context.Context, req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}

// StaticBearer attaches a fixed long-lived bearer token from
// configuration.
func StaticBearer(token string) CredentialFunc {
	return func(_ context.Context, req *http.Request) {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// ClientConfig describes one backend binding.
type ClientConfig struct {
	// Name appears in log lines, e.g. "rooms".
	Name string
	// BaseURL is the service root, e.g. "http://rooms:8082/api".
	BaseURL string
	// Timeout bounds the whole request; expiry surfaces as NetworkError.
	// Zero means 10 seconds.
	Timeout time.Duration
	// Credentials is the attachment policy.  Nil sends requests bare.
	Credentials CredentialFunc
	// OnUnauthorized, when set, makes this a redirect-on-reject client: a
	// 401 or 403 on a non-public path invokes it exactly once (to clear
	// the session and navigate to the login view) and the call fails with
	// ErrSessionExpired.  Nil clients only log the failure.
	OnUnauthorized func(ctx context.Context)
	// PublicPaths are substrings of paths that must never trigger
	// OnUnauthorized, so the login flow itself cannot redirect-loop.
	PublicPaths []string
}

// Client is a configured HTTP binding to one backend service.
type Client struct {
	name           string
	base           string
	http           *http.Client
	creds          CredentialFunc
	onUnauthorized func(ctx context.Context)
	publicPaths    []string
}

// New builds a Client from its config.
func New(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		name:           cfg.Name,
		base:           strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: timeout},
		creds:          cfg.Credentials,
		onUnauthorized: cfg.OnUnauthorized,
		publicPaths:    cfg.PublicPaths,
	}
}

// Do performs one request and returns the raw JSON body.  body, when
// non-nil, is marshalled as JSON.  No retries: a failure surfaces
// immediately with the taxonomy from errors.go.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	raw, _, err := c.roundTrip(ctx, method, path, query, body)
	return raw, err
}

// DoBytes is Do for non-JSON payloads such as invoice PDFs; it returns the
// body verbatim along with the response content type.
func (c *Client) DoBytes(ctx context.Context, method, path string, query url.Values) ([]byte, string, error) {
	return c.roundTrip(ctx, method, path, query, nil)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) ([]byte, string, error) {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			return nil, "", err
		}
		payload = bytes.NewReader(blob)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		c.creds(ctx, req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &NetworkError{URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &NetworkError{URL: target, Err: err}
	}

	if resp.StatusCode < 400 {
		return blob, resp.Header.Get("Content-Type"), nil
	}
	return nil, "", c.failure(ctx, path, resp.StatusCode, blob)
}

// failure maps an error response onto the client's taxonomy and applies
// the unauthorized policy.
func (c *Client) failure(ctx context.Context, path string, status int, body []byte) error {
	herr := &HTTPError{Status: status, Body: body}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if c.onUnauthorized != nil && !c.isPublic(path) {
			c.onUnauthorized(ctx)
			return &sessionExpiredError{cause: herr}
		}
		log.Printf("%s: rejected (%d) on %s: %s", c.name, status, path, truncate(body, 200))
	case http.StatusUnprocessableEntity:
		if verr := parseValidation(body); verr != nil {
			return verr
		}
	}
	return herr
}

func (c *Client) isPublic(path string) bool {
	for _, p := range c.publicPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// sessionExpiredError ties ErrSessionExpired to the underlying HTTPError so
// both errors.Is and errors.As keep working.
type sessionExpiredError struct {
	cause *HTTPError
}

func (e *sessionExpiredError) Error() string {
	return ErrSessionExpired.Error() + ": " + e.cause.Error()
}

func (e *sessionExpiredError) Is(target error) bool { return target == ErrSessionExpired }

func (e *sessionExpiredError) Unwrap() error { return e.cause }

// parseValidation understands the Laravel-style 422 body
// {message, errors: {field: [messages]}} plus the single-message-per-field
// variant some services emit.
func parseValidation(body []byte) *ValidationError {
	var multi struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &multi); err == nil && len(multi.Errors) > 0 {
		return &ValidationError{Fields: multi.Errors, Message: multi.Message}
	}
	var single struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &single); err == nil && len(single.Errors) > 0 {
		fields := make(map[string][]string, len(single.Errors))
		for field, msg := range single.Errors {
			fields[field] = []string{msg}
		}
		return &ValidationError{Fields: fields, Message: single.Message}
	}
	return nil
}
