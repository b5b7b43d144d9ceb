package mockapi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "duka-mockapi"
	tokenTTL    = time.Hour
)

var errInvalidToken = errors.New("mockapi: invalid token")

// issueToken mints an HS256 access token for the account. The console
// only peeks at exp; the claims otherwise mimic the production backend.
func issueToken(secret []byte, acct *Account, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"iss":   tokenIssuer,
		"sub":   acct.ID,
		"email": acct.Email,
		"name":  acct.Name,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verifyToken checks signature, issuer and expiry and returns the
// subject account id.
func verifyToken(secret []byte, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return "", errInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errInvalidToken
	}
	return sub, nil
}
