package utils // package utils provides helper functions for session token handling

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is the signed JWT the gateway hands the browser after
// login.  It does not carry the upstream services' credentials; its
// subject is the server-side session id, and the upstream bearer token
// stays in the session store.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned when a presented session token fails
// signature or claim checks.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT binding a session id and
// role for the given lifetime.  Claims: sub (session id), role, exp, iat.
func NewSessionToken(secret, sessionID, role string, ttl time.Duration) (SessionToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  sessionID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a session token and returns the session id it
// names.  Only HMAC signatures are accepted.
func ParseSessionToken(secret, raw string) (sessionID string, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
