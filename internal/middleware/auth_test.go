package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return s.claims, s.err
}

type stubResolver struct {
	user *models.User
	err  error
}

func (s stubResolver) EnsureUser(ctx context.Context, subject, email string) (*models.User, error) {
	return s.user, s.err
}

func authRouter(v TokenValidator, users UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(v, users))
	router.GET("/me", func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "subject": c.GetString(ContextSubject)})
	})
	return router
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	claims := &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "idp|1"}, Email: "a@b.c"}
	router := authRouter(stubValidator{claims: claims}, stubResolver{user: &models.User{ID: userID, Email: "a@b.c"}})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"lower-case scheme", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, rr.Body.String(), userID.String())
				assert.Contains(t, rr.Body.String(), "idp|1")
			}
		})
	}
}

func TestAuthenticateUserResolutionFails(t *testing.T) {
	claims := &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "idp|1"}}
	router := authRouter(stubValidator{claims: claims}, stubResolver{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "db down")
}
