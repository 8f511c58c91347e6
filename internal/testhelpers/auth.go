package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/mealwise/backend/internal/types"
)

const (
	TestAuthSecret   = "test-secret"
	TestAuthIssuer   = "https://idp.example.com/"
	TestAuthAudience = "mealwise-api"
)

// SignToken issues an HS256 token for subject the way the identity provider would.
func SignToken(t *testing.T, subject, email string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    TestAuthIssuer,
			Audience:  jwt.ClaimStrings{TestAuthAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestAuthSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
