// Package session holds the sign-in gate for the saved-items surface.
//
// The gate is deliberately shallow: it checks that a bearer token is present
// and that its claims decode, nothing more. Tokens are issued and verified by
// the portal's auth provider; this service only reads the payload for the
// user identity and display fields.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Claims is the decoded JWT payload. Zero-valued fields were absent.
type Claims struct {
	Subject   string `json:"sub"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// Expired reports whether the token's exp claim has passed.
// Tokens without an exp claim never expire here.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt > 0 && now.Unix() >= c.ExpiresAt
}

// DecodeClaims extracts the payload segment of a JWT without verifying the
// signature. Any malformed input yields an error, never a panic; callers
// treat a failed decode as "no session".
func DecodeClaims(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token has %d segments, want 3", len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse token claims: %w", err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject claim")
	}

	return &claims, nil
}

// Session is an authenticated caller, carried through the request context.
type Session struct {
	Token  string
	Claims *Claims
}

// User returns the identity the saved-items slots are keyed by.
func (s *Session) User() string {
	return s.Claims.Subject
}

type contextKey struct{}

// WithSession attaches a session to the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by the gate middleware, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
