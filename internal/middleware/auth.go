package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

// Keys set on the gin context by Authenticate.
const (
	ContextUserID  = "user_id"
	ContextSubject = "subject"
	ContextEmail   = "email"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// UserResolver maps a token subject to the local user.
type UserResolver interface {
	EnsureUser(ctx context.Context, subject, email string) (*models.User, error)
}

// Authenticate validates the bearer token and resolves the local user,
// creating it on first sight.
func Authenticate(validator TokenValidator, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.NewUnauthorizedError("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.NewUnauthorizedError("invalid authorization header format"))
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.NewUnauthorizedError(err.Error()))
			return
		}

		user, err := users.EnsureUser(c.Request.Context(), claims.Subject, claims.Email)
		if err != nil {
			logger.L().Error("failed to resolve user", zap.String("subject", claims.Subject), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, types.NewInternalError(err))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextSubject, claims.Subject)
		c.Set(ContextEmail, user.Email)
		c.Next()
	}
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
