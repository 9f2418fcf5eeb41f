package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is the locally readable view of a bearer token. Signatures are
// never verified client-side; expiry read here is advisory only, the
// backend remains the authority.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Opaque    bool
}

// InspectToken parses token as an unverified JWT. A token that is not a
// parseable JWT is reported as opaque, never as an error.
func InspectToken(token string) TokenInfo {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return TokenInfo{Opaque: true}
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}

// Expired reports whether the token is known to be past its expiry. Opaque
// tokens and tokens without an exp claim are never reported expired.
func (t TokenInfo) Expired(now time.Time) bool {
	if t.Opaque || t.ExpiresAt.IsZero() {
		return false
	}
	return now.After(t.ExpiresAt)
}
