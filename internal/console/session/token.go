package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry peeks at the bearer token's exp claim when the token
// happens to be a JWT. The console never verifies signatures (the
// backend does); this is display/staleness metadata only, so an opaque
// or unparseable token simply yields the zero time.
func tokenExpiry(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
