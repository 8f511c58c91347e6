package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealwise/backend/internal/mocks"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/shopping"
	"github.com/pageza/mealwise/backend/internal/types"
)

func listResult(userID uuid.UUID, items ...models.ShoppingListItem) *service.ShoppingListResult {
	list := &models.ShoppingList{ID: uuid.New(), UserID: userID, Name: "Weekend", Items: items}
	return &service.ShoppingListResult{List: list, View: shopping.BuildView(items)}
}

func TestCreateAndListShoppingLists(t *testing.T) {
	userID := uuid.New()
	lists := new(mocks.MockShoppingService)
	router := setupTestRouter(userID, NewShoppingListHandler(lists))

	lists.On("Create", mock.Anything, userID, "Weekend").Return(listResult(userID), nil)
	w := performRequest(t, router, http.MethodPost, "/api/v1/shopping-lists", map[string]any{"name": "Weekend"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Weekend", decodeBody(t, w)["shopping_list"].(map[string]any)["name"])

	w = performRequest(t, router, http.MethodPost, "/api/v1/shopping-lists", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	lists.On("List", mock.Anything, userID).Return([]models.ShoppingList{*listResult(userID).List}, nil)
	w = performRequest(t, router, http.MethodGet, "/api/v1/shopping-lists", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["shopping_lists"], 1)
}

func TestGetShoppingListView(t *testing.T) {
	userID := uuid.New()
	lists := new(mocks.MockShoppingService)
	router := setupTestRouter(userID, NewShoppingListHandler(lists))

	result := listResult(userID,
		models.ShoppingListItem{ID: "a", Name: "garlic", Amount: 5, Unit: "cloves", Aisle: "Produce"},
		models.ShoppingListItem{ID: "b", Name: "milk", Amount: 1, Unit: "cup", Aisle: "Milk, Eggs, Other Dairy", Purchased: true},
	)
	lists.On("Get", mock.Anything, userID, result.List.ID).Return(result, nil)

	w := performRequest(t, router, http.MethodGet, "/api/v1/shopping-lists/"+result.List.ID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	view := decodeBody(t, w)["view"].(map[string]any)
	assert.Len(t, view["active"], 1)
	assert.Len(t, view["completed"], 1)
	assert.Equal(t, float64(1), view["remaining"])
}

func TestShoppingItemRoutes(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	lists := new(mocks.MockShoppingService)
	router := setupTestRouter(userID, NewShoppingListHandler(lists))
	base := "/api/v1/shopping-lists/" + listID.String() + "/items"

	lists.On("AddItem", mock.Anything, userID, listID, mock.MatchedBy(func(req *types.AddShoppingItemRequest) bool {
		return req.Name == "paper towels" && req.Amount == 2
	})).Return(listResult(userID), nil)
	w := performRequest(t, router, http.MethodPost, base, map[string]any{"name": "paper towels", "amount": 2})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, base, map[string]any{"amount": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decodeBody(t, w)["fields"].(map[string]any)
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be at least 0", fields["amount"])

	lists.On("UpdateItem", mock.Anything, userID, listID, "item-1", mock.MatchedBy(func(req *types.UpdateShoppingItemRequest) bool {
		return req.Amount != nil && *req.Amount == 3 && req.Name == nil
	})).Return(listResult(userID), nil)
	w = performRequest(t, router, http.MethodPatch, base+"/item-1", map[string]any{"amount": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	lists.On("ToggleItem", mock.Anything, userID, listID, "item-1").Return(listResult(userID), nil)
	w = performRequest(t, router, http.MethodPost, base+"/item-1/toggle", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	lists.On("DeleteItem", mock.Anything, userID, listID, "gone").Return(nil, service.ErrItemNotFound)
	w = performRequest(t, router, http.MethodDelete, base+"/gone", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	lists.AssertExpectations(t)
}

func TestClearPurchased(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	lists := new(mocks.MockShoppingService)
	router := setupTestRouter(userID, NewShoppingListHandler(lists))
	base := "/api/v1/shopping-lists/" + listID.String() + "/items"

	w := performRequest(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	lists.AssertNotCalled(t, "ClearPurchased")

	result := listResult(userID)
	result.Removed = 2
	lists.On("ClearPurchased", mock.Anything, userID, listID).Return(result, nil)
	w = performRequest(t, router, http.MethodDelete, base+"?purchased=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["removed"])
}

func TestDeleteShoppingList(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	lists := new(mocks.MockShoppingService)
	router := setupTestRouter(userID, NewShoppingListHandler(lists))

	lists.On("Delete", mock.Anything, userID, listID).Return(service.ErrShoppingListNotFound)

	w := performRequest(t, router, http.MethodDelete, "/api/v1/shopping-lists/"+listID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
