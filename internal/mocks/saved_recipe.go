package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

// MockSavedRecipeService is a mock implementation of the ISavedRecipeService interface
type MockSavedRecipeService struct {
	mock.Mock
}

func (m *MockSavedRecipeService) Save(ctx context.Context, userID uuid.UUID, req *types.SaveRecipeRequest) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockSavedRecipeService) Unsave(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockSavedRecipeService) Toggle(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedRecipeService) IsSaved(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedRecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedRecipe), args.Error(1)
}
