package session

import "context"

type ctxKey struct{}

// NewContext returns ctx carrying the request's session.  The middleware
// installs it so the service clients can read the upstream token (and
// clear the right session on a 401) from any call depth.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
