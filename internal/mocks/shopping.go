package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

// MockShoppingService is a mock implementation of the IShoppingService interface
type MockShoppingService struct {
	mock.Mock
}

func (m *MockShoppingService) GenerateForMealPlan(ctx context.Context, userID, planID uuid.UUID) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, planID))
}

func (m *MockShoppingService) GetForMealPlan(ctx context.Context, userID, planID uuid.UUID) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, planID))
}

func (m *MockShoppingService) List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShoppingList), args.Error(1)
}

func (m *MockShoppingService) Create(ctx context.Context, userID uuid.UUID, name string) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, name))
}

func (m *MockShoppingService) Get(ctx context.Context, userID, listID uuid.UUID) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, listID))
}

func (m *MockShoppingService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	args := m.Called(ctx, userID, listID)
	return args.Error(0)
}

func (m *MockShoppingService) AddItem(ctx context.Context, userID, listID uuid.UUID, req *types.AddShoppingItemRequest) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, listID, req))
}

func (m *MockShoppingService) UpdateItem(ctx context.Context, userID, listID uuid.UUID, itemID string, req *types.UpdateShoppingItemRequest) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, listID, itemID, req))
}

func (m *MockShoppingService) ToggleItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, listID, itemID))
}

func (m *MockShoppingService) DeleteItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, listID, itemID))
}

func (m *MockShoppingService) ClearPurchased(ctx context.Context, userID, listID uuid.UUID) (*service.ShoppingListResult, error) {
	return m.result(m.Called(ctx, userID, listID))
}

func (m *MockShoppingService) result(args mock.Arguments) (*service.ShoppingListResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShoppingListResult), args.Error(1)
}
