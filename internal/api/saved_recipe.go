package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type SavedRecipeHandler struct {
	savedRecipeService service.ISavedRecipeService
}

func NewSavedRecipeHandler(savedRecipeService service.ISavedRecipeService) *SavedRecipeHandler {
	return &SavedRecipeHandler{
		savedRecipeService: savedRecipeService,
	}
}

func (h *SavedRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	saved := router.Group("/saved-recipes")
	{
		saved.GET("", h.ListSavedRecipes)
		saved.POST("", h.SaveRecipe)
		saved.GET("/:recipeId", h.IsSaved)
		saved.POST("/:recipeId/toggle", h.ToggleSaved)
		saved.DELETE("/:recipeId", h.UnsaveRecipe)
	}
}

func (h *SavedRecipeHandler) ListSavedRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := h.savedRecipeService.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_recipes": recipes})
}

func (h *SavedRecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SaveRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	saved, err := h.savedRecipeService.Save(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saved_recipe": saved})
}

func (h *SavedRecipeHandler) IsSaved(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := recipeParam(c, "recipeId")
	if !ok {
		return
	}

	saved, err := h.savedRecipeService.IsSaved(c.Request.Context(), userID, recipeID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe_id": recipeID, "saved": saved})
}

func (h *SavedRecipeHandler) ToggleSaved(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := recipeParam(c, "recipeId")
	if !ok {
		return
	}

	saved, err := h.savedRecipeService.Toggle(c.Request.Context(), userID, recipeID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe_id": recipeID, "saved": saved})
}

func (h *SavedRecipeHandler) UnsaveRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := recipeParam(c, "recipeId")
	if !ok {
		return
	}

	if err := h.savedRecipeService.Unsave(c.Request.Context(), userID, recipeID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
