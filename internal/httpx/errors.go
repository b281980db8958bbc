// Package httpx is the shared plumbing for the per-backend service clients.
// Each backend gets one configured Client bound to a base URL, a fixed
// timeout and a credential policy; responses are inspected for
// authorization failures and list bodies are flattened through the envelope
// normalizer regardless of which service produced them.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrSessionExpired marks a 401 or 403 from a redirect-on-reject client on
// a non-public path.  By the time callers see it the session has already been
// cleared and the navigator invoked; handlers should stop rendering and let
// the redirect happen.
var ErrSessionExpired = errors.New("session expired")

// NetworkError means no usable response arrived: connection refused, DNS
// failure or the per-client timeout.  Dashboards render it as a generic
// retry prompt.
type NetworkError struct {
	URL string // request URL for logs
	Err error  // transport error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a response with status >= 400 that is neither a handled 401
// nor a validation failure.  Body is kept verbatim so cross-service errors
// can be surfaced to the operator without masking.
type HTTPError struct {
	Status int    // HTTP status code
	Body   []byte // raw response body
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, truncate(e.Body, 200))
}

// Message extracts the user-facing text from the body's "message" or
// "error" field, falling back to the raw body.
func (e *HTTPError) Message() string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(e.Body))
}

// ValidationError is a 422 whose body carries a field→messages map.  The
// dashboards render the messages inline next to the offending fields.
type ValidationError struct {
	Fields  map[string][]string // field name -> validation messages
	Message string              // top-level message, if any
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// IsNotFound reports whether err is an HTTPError with a 404 or 400 status.
// The reservations service answers lookups for unknown rooms with either,
// so the reconciliation path treats both as a miss.
func IsNotFound(err error) bool {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Status == 404 || herr.Status == 400
	}
	return false
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
