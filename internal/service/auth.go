package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/types"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenVerifier validates access tokens issued by the identity provider.
// Tokens are never issued here.
type TokenVerifier struct {
	key      any
	method   string
	issuer   string
	audience string
}

// NewTokenVerifier builds a verifier from config. A public key file selects
// RS256; otherwise the shared secret is used with HS256.
func NewTokenVerifier(cfg *config.Config) (*TokenVerifier, error) {
	if cfg.AuthPublicKeyFile != "" {
		pem, err := os.ReadFile(cfg.AuthPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read auth public key: %w", err)
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return nil, fmt.Errorf("failed to parse auth public key: %w", err)
		}
		return &TokenVerifier{key: key, method: jwt.SigningMethodRS256.Alg(), issuer: cfg.AuthIssuer, audience: cfg.AuthAudience}, nil
	}
	if cfg.AuthSecret == "" {
		return nil, errors.New("either AUTH_SECRET or AUTH_PUBLIC_KEY_FILE must be set")
	}
	return NewHMACVerifier(cfg.AuthSecret, cfg.AuthIssuer, cfg.AuthAudience), nil
}

// NewHMACVerifier returns a verifier for HS256 tokens signed with secret.
// Empty issuer or audience skips that check.
func NewHMACVerifier(secret, issuer, audience string) *TokenVerifier {
	return &TokenVerifier{key: []byte(secret), method: jwt.SigningMethodHS256.Alg(), issuer: issuer, audience: audience}
}

func (v *TokenVerifier) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
