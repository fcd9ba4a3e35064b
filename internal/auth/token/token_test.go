package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func parse(t *testing.T, signed, secret string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	return claims
}

func TestIssueSetsSubjectAndExpiry(t *testing.T) {
	signed, err := Issue("ann@x.com", "secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := parse(t, signed, "secret")
	if claims["sub"] != "ann@x.com" {
		t.Fatalf("expected subject claim, got %v", claims["sub"])
	}

	exp := int64(claims["exp"].(float64))
	want := time.Now().Add(30 * time.Minute).Unix()
	if exp < want-5 || exp > want+5 {
		t.Fatalf("expected expiry near %d, got %d", want, exp)
	}
}

func TestIssueDefaultsTo15Minutes(t *testing.T) {
	signed, err := Issue("ann@x.com", "secret", "HS256", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := parse(t, signed, "secret")
	exp := int64(claims["exp"].(float64))
	want := time.Now().Add(DefaultTTL).Unix()
	if exp < want-5 || exp > want+5 {
		t.Fatalf("expected default expiry near %d, got %d", want, exp)
	}
}

func TestIssueRejectsNonHMACAlgorithms(t *testing.T) {
	if _, err := Issue("ann@x.com", "secret", "RS256", time.Minute); err == nil {
		t.Fatal("expected RS256 to be rejected")
	}
	if _, err := Issue("ann@x.com", "secret", "bogus", time.Minute); err == nil {
		t.Fatal("expected an unknown algorithm to be rejected")
	}
}
