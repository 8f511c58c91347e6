package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealwise/backend/internal/mealplan"
	"github.com/pageza/mealwise/backend/internal/middleware"
	"github.com/pageza/mealwise/backend/internal/mocks"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/shopping"
	"github.com/pageza/mealwise/backend/internal/types"
)

func newMealPlanRouter(userID uuid.UUID) (*mocks.MockMealPlanService, *mocks.MockShoppingService, http.Handler) {
	plans := new(mocks.MockMealPlanService)
	lists := new(mocks.MockShoppingService)
	limiter := middleware.NewMealPlanGenerationRateLimiter(nil, 5, time.Hour)
	return plans, lists, setupTestRouter(userID, NewMealPlanHandler(plans, lists, limiter))
}

func samplePlan(userID uuid.UUID) *models.MealPlan {
	return &models.MealPlan{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Week one",
		StartDate: "2026-03-02",
		EndDate:   "2026-03-08",
		Meals: []models.Meal{
			{ID: "m1", RecipeID: 716429, MealType: models.MealTypeDinner, Title: "Pasta with Garlic", Date: "2026-03-02"},
		},
	}
}

func TestGenerateMealPlan(t *testing.T) {
	userID := uuid.New()

	t.Run("created with warnings", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)
		result := &service.GenerateResult{Plan: samplePlan(userID), Warnings: []string{"no recipes found for breakfast"}}
		plans.On("Generate", mock.Anything, userID, mock.MatchedBy(func(req *types.GenerateMealPlanRequest) bool {
			return req.StartDate == "2026-03-02" && req.Days == 7
		})).Return(result, nil)

		w := performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/generate", map[string]any{
			"start_date": "2026-03-02",
			"days":       7,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body, "meal_plan")
		assert.Equal(t, []any{"no recipes found for breakfast"}, body["warnings"])
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)
		plans.On("Generate", mock.Anything, userID, &types.GenerateMealPlanRequest{}).
			Return(&service.GenerateResult{Plan: samplePlan(userID)}, nil)

		w := performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/generate", nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		plans.AssertExpectations(t)
	})

	t.Run("bad date", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)

		w := performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/generate", map[string]any{"start_date": "03/02/2026"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must be a date in YYYY-MM-DD format", decodeBody(t, w)["fields"].(map[string]any)["start_date"])
		plans.AssertNotCalled(t, "Generate")
	})

	t.Run("nothing matched", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)
		plans.On("Generate", mock.Anything, userID, mock.Anything).Return(nil, service.ErrNoRecipesFound)

		w := performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/generate", map[string]any{})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetMealPlan(t *testing.T) {
	userID := uuid.New()
	plan := samplePlan(userID)

	t.Run("found", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)
		plans.On("Get", mock.Anything, userID, plan.ID).Return(plan, nil)

		w := performRequest(t, router, http.MethodGet, "/api/v1/meal-plans/"+plan.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, plan.ID.String(), decodeBody(t, w)["meal_plan"].(map[string]any)["id"])
	})

	t.Run("not found", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)
		plans.On("Get", mock.Anything, userID, plan.ID).Return(nil, service.ErrMealPlanNotFound)

		w := performRequest(t, router, http.MethodGet, "/api/v1/meal-plans/"+plan.ID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", decodeBody(t, w)["type"])
	})

	t.Run("malformed id", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)

		w := performRequest(t, router, http.MethodGet, "/api/v1/meal-plans/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		plans.AssertNotCalled(t, "Get")
	})
}

func TestListRenameDeleteMealPlans(t *testing.T) {
	userID := uuid.New()
	plan := samplePlan(userID)
	plans, _, router := newMealPlanRouter(userID)

	plans.On("List", mock.Anything, userID).Return([]models.MealPlan{*plan}, nil)
	w := performRequest(t, router, http.MethodGet, "/api/v1/meal-plans", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["meal_plans"], 1)

	renamed := *plan
	renamed.Name = "Spring week"
	plans.On("Rename", mock.Anything, userID, plan.ID, "Spring week").Return(&renamed, nil)
	w = performRequest(t, router, http.MethodPatch, "/api/v1/meal-plans/"+plan.ID.String(), map[string]any{"name": "Spring week"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, router, http.MethodPatch, "/api/v1/meal-plans/"+plan.ID.String(), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	plans.On("Delete", mock.Anything, userID, plan.ID).Return(nil)
	w = performRequest(t, router, http.MethodDelete, "/api/v1/meal-plans/"+plan.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	plans.AssertExpectations(t)
}

func TestGetCalendar(t *testing.T) {
	userID := uuid.New()
	planID := uuid.New()

	t.Run("window", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)
		calendar := &mealplan.Calendar{
			StartDate: "2026-03-02",
			EndDate:   "2026-03-03",
			Days:      []mealplan.Day{{Date: "2026-03-02", Meals: []models.Meal{}}, {Date: "2026-03-03", Meals: []models.Meal{}}},
		}
		plans.On("Calendar", mock.Anything, userID, planID, "2026-03-02", "2026-03-03").Return(calendar, nil)

		w := performRequest(t, router, http.MethodGet, "/api/v1/meal-plans/"+planID.String()+"/calendar?start=2026-03-02&end=2026-03-03", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["days"], 2)
	})

	t.Run("inverted window", func(t *testing.T) {
		plans, _, router := newMealPlanRouter(userID)
		plans.On("Calendar", mock.Anything, userID, planID, "2026-03-05", "2026-03-01").
			Return(nil, fmt.Errorf("%w: end before start", mealplan.ErrInvalidWindow))

		w := performRequest(t, router, http.MethodGet, "/api/v1/meal-plans/"+planID.String()+"/calendar?start=2026-03-05&end=2026-03-01", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAddAndRemoveMeal(t *testing.T) {
	userID := uuid.New()
	plan := samplePlan(userID)
	plans, _, router := newMealPlanRouter(userID)

	plans.On("AddMeal", mock.Anything, userID, plan.ID, mock.MatchedBy(func(req *types.AddMealRequest) bool {
		return int64(req.RecipeID) == 716429 && req.MealType == "lunch"
	})).Return(plan, nil)
	w := performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/"+plan.ID.String()+"/meals", map[string]any{
		"recipe_id": "recipe-716429",
		"meal_type": "lunch",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/"+plan.ID.String()+"/meals", map[string]any{
		"recipe_id": "abc",
		"meal_type": "lunch",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	plans.On("RemoveMeal", mock.Anything, userID, plan.ID, "missing").Return(nil, service.ErrMealNotFound)
	w = performRequest(t, router, http.MethodDelete, "/api/v1/meal-plans/"+plan.ID.String()+"/meals/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	plans.AssertExpectations(t)
}

func TestMealPlanShoppingList(t *testing.T) {
	userID := uuid.New()
	planID := uuid.New()
	list := &models.ShoppingList{ID: uuid.New(), UserID: userID, MealPlanID: &planID, Name: "Shopping list for Week one"}

	t.Run("generate", func(t *testing.T) {
		_, lists, router := newMealPlanRouter(userID)
		result := &service.ShoppingListResult{
			List:     list,
			View:     shopping.BuildView(nil),
			Warnings: []shopping.Warning{{RecipeID: 3, Title: "Soup", Message: "recipe unavailable"}},
		}
		lists.On("GenerateForMealPlan", mock.Anything, userID, planID).Return(result, nil)

		w := performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/"+planID.String()+"/shopping-list", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Contains(t, body, "shopping_list")
		assert.Len(t, body["warnings"], 1)
	})

	t.Run("provider down", func(t *testing.T) {
		_, lists, router := newMealPlanRouter(userID)
		lists.On("GenerateForMealPlan", mock.Anything, userID, planID).
			Return(nil, fmt.Errorf("%w: all recipe fetches failed", service.ErrProviderUnavailable))

		w := performRequest(t, router, http.MethodPost, "/api/v1/meal-plans/"+planID.String()+"/shopping-list", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("fetch", func(t *testing.T) {
		_, lists, router := newMealPlanRouter(userID)
		lists.On("GetForMealPlan", mock.Anything, userID, planID).Return(nil, service.ErrShoppingListNotFound)

		w := performRequest(t, router, http.MethodGet, "/api/v1/meal-plans/"+planID.String()+"/shopping-list", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
