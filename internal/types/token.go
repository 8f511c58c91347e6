package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims read from an identity-provider access token.
// Subject is the provider's stable user id.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}
