package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealwise/backend/internal/mealplan"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// MockMealPlanService is a mock implementation of the IMealPlanService interface
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) Generate(ctx context.Context, userID uuid.UUID, req *types.GenerateMealPlanRequest) (*service.GenerateResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockMealPlanService) List(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, userID, planID))
}

func (m *MockMealPlanService) Rename(ctx context.Context, userID, planID uuid.UUID, name string) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, userID, planID, name))
}

func (m *MockMealPlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	args := m.Called(ctx, userID, planID)
	return args.Error(0)
}

func (m *MockMealPlanService) AddMeal(ctx context.Context, userID, planID uuid.UUID, req *types.AddMealRequest) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, userID, planID, req))
}

func (m *MockMealPlanService) RemoveMeal(ctx context.Context, userID, planID uuid.UUID, mealID string) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, userID, planID, mealID))
}

func (m *MockMealPlanService) Calendar(ctx context.Context, userID, planID uuid.UUID, start, end string) (*mealplan.Calendar, error) {
	args := m.Called(ctx, userID, planID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.Calendar), args.Error(1)
}

func (m *MockMealPlanService) plan(args mock.Arguments) (*models.MealPlan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}
