package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/types"
)

// MockRecipeService is a mock implementation of the IRecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Search(ctx context.Context, userID uuid.UUID, q *types.RecipeSearchQuery) (*provider.SearchResult, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SearchResult), args.Error(1)
}

func (m *MockRecipeService) Get(ctx context.Context, recipeID int64) (*provider.RecipeInformation, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.RecipeInformation), args.Error(1)
}

func (m *MockRecipeService) Nutrition(ctx context.Context, recipeID int64) (*provider.Nutrition, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Nutrition), args.Error(1)
}
