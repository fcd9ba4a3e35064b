// Package token issues signed access tokens for the auth module.
// Verification lives in the HTTP middleware layer.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL applies when no expiry is configured.
const DefaultTTL = 15 * time.Minute

// Issue builds a signed token whose subject claim is the account email and
// whose expiry is now plus ttl. The signing method is selected by name
// (HS256, HS384 or HS512).
func Issue(email, secret, algorithm string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return "", fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return "", fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	return jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
}
