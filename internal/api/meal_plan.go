package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
	shoppingService service.IShoppingService
	limiter         *middleware.RateLimiter
}

func NewMealPlanHandler(mealPlanService service.IMealPlanService, shoppingService service.IShoppingService, limiter *middleware.RateLimiter) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
		shoppingService: shoppingService,
		limiter:         limiter,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	{
		generate := []gin.HandlerFunc{h.GenerateMealPlan}
		if h.limiter != nil {
			generate = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, generate...)
		}
		plans.POST("/generate", generate...)
		plans.GET("", h.ListMealPlans)
		plans.GET("/:id", h.GetMealPlan)
		plans.PATCH("/:id", h.RenameMealPlan)
		plans.DELETE("/:id", h.DeleteMealPlan)
		plans.GET("/:id/calendar", h.GetCalendar)
		plans.POST("/:id/meals", h.AddMeal)
		plans.DELETE("/:id/meals/:mealId", h.RemoveMeal)
		plans.POST("/:id/shopping-list", h.GenerateShoppingList)
		plans.GET("/:id/shopping-list", h.GetShoppingList)
	}
}

func (h *MealPlanHandler) GenerateMealPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GenerateMealPlanRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	result, err := h.mealPlanService.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plans, err := h.mealPlanService.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.mealPlanService.Get(c.Request.Context(), userID, planID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) RenameMealPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req types.RenameMealPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.mealPlanService.Rename(c.Request.Context(), userID, planID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.mealPlanService.Delete(c.Request.Context(), userID, planID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MealPlanHandler) GetCalendar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	calendar, err := h.mealPlanService.Calendar(c.Request.Context(), userID, planID, c.Query("start"), c.Query("end"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, calendar)
}

func (h *MealPlanHandler) AddMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req types.AddMealRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.mealPlanService.AddMeal(c.Request.Context(), userID, planID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) RemoveMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.mealPlanService.RemoveMeal(c.Request.Context(), userID, planID, c.Param("mealId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) GenerateShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.shoppingService.GenerateForMealPlan(c.Request.Context(), userID, planID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MealPlanHandler) GetShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.shoppingService.GetForMealPlan(c.Request.Context(), userID, planID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
