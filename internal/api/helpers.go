package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/recipeid"
	"github.com/pageza/mealwise/backend/internal/types"
)

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = c.Error(types.NewUnauthorizedError("unauthorized"))
		return uuid.Nil, false
	}
	return userID, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(types.NewValidationError(map[string]string{name: "must be a valid id"}))
		return uuid.Nil, false
	}
	return id, true
}

func recipeParam(c *gin.Context, name string) (int64, bool) {
	id, err := recipeid.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(types.NewValidationError(map[string]string{name: "must be a recipe id"}))
		return 0, false
	}
	return id, true
}

// bindJSON binds the body into req, attaching the error on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(err)
		return false
	}
	return true
}
