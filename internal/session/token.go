package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is the subset of JWT claims the client can read without holding
// the server's signing secret. Validity is always the server's call; this
// exists only for display (whoami) and early expiry warnings.
type TokenInfo struct {
	Subject   string
	Roles     []string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// InspectToken decodes the token payload without signature verification.
// Opaque (non-JWT) tokens return ok=false and are still perfectly usable.
func InspectToken(token string) (TokenInfo, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return TokenInfo{}, false
	}
	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, false
	}
	info := TokenInfo{Subject: claims.Subject, Roles: claims.Roles}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info, true
}

// Expired reports whether the token carries an expiry in the past. Tokens
// without a readable expiry are never reported as expired.
func Expired(token string, now time.Time) bool {
	info, ok := InspectToken(token)
	if !ok || info.ExpiresAt.IsZero() {
		return false
	}
	return now.After(info.ExpiresAt)
}
