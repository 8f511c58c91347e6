package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/types"
)

type ShoppingListHandler struct {
	shoppingService service.IShoppingService
}

func NewShoppingListHandler(shoppingService service.IShoppingService) *ShoppingListHandler {
	return &ShoppingListHandler{
		shoppingService: shoppingService,
	}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/shopping-lists")
	{
		lists.GET("", h.ListShoppingLists)
		lists.POST("", h.CreateShoppingList)
		lists.GET("/:id", h.GetShoppingList)
		lists.DELETE("/:id", h.DeleteShoppingList)
		lists.POST("/:id/items", h.AddItem)
		lists.DELETE("/:id/items", h.ClearPurchased)
		lists.PATCH("/:id/items/:itemId", h.UpdateItem)
		lists.POST("/:id/items/:itemId/toggle", h.ToggleItem)
		lists.DELETE("/:id/items/:itemId", h.DeleteItem)
	}
}

func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	lists, err := h.shoppingService.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) CreateShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateShoppingListRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.shoppingService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.shoppingService.Get(c.Request.Context(), userID, listID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.shoppingService.Delete(c.Request.Context(), userID, listID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ShoppingListHandler) AddItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req types.AddShoppingItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.shoppingService.AddItem(c.Request.Context(), userID, listID, &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ShoppingListHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req types.UpdateShoppingItemRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.shoppingService.UpdateItem(c.Request.Context(), userID, listID, c.Param("itemId"), &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ShoppingListHandler) ToggleItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.shoppingService.ToggleItem(c.Request.Context(), userID, listID, c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.shoppingService.DeleteItem(c.Request.Context(), userID, listID, c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ClearPurchased removes completed items. Requires ?purchased=true.
func (h *ShoppingListHandler) ClearPurchased(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if purchased, err := strconv.ParseBool(c.Query("purchased")); err != nil || !purchased {
		_ = c.Error(types.NewValidationError(map[string]string{"purchased": "must be true"}))
		return
	}

	result, err := h.shoppingService.ClearPurchased(c.Request.Context(), userID, listID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
