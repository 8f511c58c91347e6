package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/middleware"
)

type RateLimitHandler struct {
	generation *middleware.RateLimiter
}

func NewRateLimitHandler(generation *middleware.RateLimiter) *RateLimitHandler {
	return &RateLimitHandler{generation: generation}
}

func (h *RateLimitHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/rate-limits/meal-plan-generation", h.GetGenerationStatus)
}

func (h *RateLimitHandler) GetGenerationStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	status, err := h.generation.Status(c.Request.Context(), userID.String())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
