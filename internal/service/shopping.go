package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/shopping"
	"github.com/pageza/mealwise/backend/internal/types"
)

// ShoppingListResult is a list together with its display view. Warnings are
// only set by generation.
type ShoppingListResult struct {
	List     *models.ShoppingList `json:"shopping_list"`
	View     shopping.View        `json:"view"`
	Warnings []shopping.Warning   `json:"warnings,omitempty"`
	Removed  int                  `json:"removed,omitempty"`
}

// ShoppingService handles shopping list operations
type ShoppingService struct {
	db         *gorm.DB
	provider   provider.RecipeProvider
	fetchLimit int
}

var _ IShoppingService = (*ShoppingService)(nil)

func NewShoppingService(db *gorm.DB, p provider.RecipeProvider) *ShoppingService {
	return &ShoppingService{
		db:         db,
		provider:   p,
		fetchLimit: shopping.DefaultFetchLimit,
	}
}

// GenerateForMealPlan rebuilds the plan's shopping list from the ingredients
// of its recipes. Generated items are replaced wholesale and manual items are
// kept. Recipes whose ingredients cannot be loaded are reported as warnings;
// if none can be loaded the stored list is left untouched.
func (s *ShoppingService) GenerateForMealPlan(ctx context.Context, userID, planID uuid.UUID) (*ShoppingListResult, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	refs, planned := recipeRefs(&plan)
	recipes, warnings, err := shopping.Collect(ctx, refs, s.fetchIngredients, s.fetchLimit)
	if err != nil {
		return nil, err
	}
	if len(refs) > 0 && len(recipes) == 0 {
		return nil, fmt.Errorf("%w: no recipe ingredients could be loaded", ErrProviderUnavailable)
	}
	generated := shopping.Aggregate(perMeal(recipes, planned))

	list, err := s.saveGenerated(ctx, &plan, generated)
	if err != nil {
		return nil, err
	}

	logger.L().Info("generated shopping list",
		zap.String("plan_id", plan.ID.String()),
		zap.Int("recipes", len(recipes)),
		zap.Int("items", len(generated)),
		zap.Int("warnings", len(warnings)),
	)
	result := newResult(list)
	result.Warnings = warnings
	return result, nil
}

func (s *ShoppingService) GetForMealPlan(ctx context.Context, userID, planID uuid.UUID) (*ShoppingListResult, error) {
	list, err := s.findForPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return newResult(list), nil
}

func (s *ShoppingService) List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	lists := []models.ShoppingList{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at desc").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Create makes a standalone list not tied to any meal plan.
func (s *ShoppingService) Create(ctx context.Context, userID uuid.UUID, name string) (*ShoppingListResult, error) {
	list := &models.ShoppingList{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, err
	}
	return newResult(list), nil
}

func (s *ShoppingService) Get(ctx context.Context, userID, listID uuid.UUID) (*ShoppingListResult, error) {
	list, err := s.load(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	return newResult(list), nil
}

func (s *ShoppingService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", listID, userID).Delete(&models.ShoppingList{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrShoppingListNotFound
	}
	return nil
}

// AddItem appends a manual item. Without an explicit aisle one is inferred
// from the name.
func (s *ShoppingService) AddItem(ctx context.Context, userID, listID uuid.UUID, req *types.AddShoppingItemRequest) (*ShoppingListResult, error) {
	return s.mutate(ctx, userID, listID, func(list *models.ShoppingList) error {
		aisle := req.Aisle
		if aisle == "" {
			aisle = shopping.InferAisle(shopping.NewNormalizer().Normalize(req.Name))
		}
		list.Items = append(list.Items, models.ShoppingListItem{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Amount:    req.Amount,
			Unit:      req.Unit,
			Aisle:     aisle,
			RecipeIDs: []int64{},
			Source:    models.ItemSourceManual,
		})
		return nil
	})
}

func (s *ShoppingService) UpdateItem(ctx context.Context, userID, listID uuid.UUID, itemID string, req *types.UpdateShoppingItemRequest) (*ShoppingListResult, error) {
	return s.mutate(ctx, userID, listID, func(list *models.ShoppingList) error {
		idx := list.FindItem(itemID)
		if idx < 0 {
			return ErrItemNotFound
		}
		item := &list.Items[idx]
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Amount != nil {
			item.Amount = *req.Amount
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.Aisle != nil {
			item.Aisle = *req.Aisle
		}
		if req.Purchased != nil {
			item.Purchased = *req.Purchased
		}
		return nil
	})
}

func (s *ShoppingService) ToggleItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*ShoppingListResult, error) {
	return s.mutate(ctx, userID, listID, func(list *models.ShoppingList) error {
		idx := list.FindItem(itemID)
		if idx < 0 {
			return ErrItemNotFound
		}
		list.Items[idx].Purchased = !list.Items[idx].Purchased
		return nil
	})
}

func (s *ShoppingService) DeleteItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*ShoppingListResult, error) {
	return s.mutate(ctx, userID, listID, func(list *models.ShoppingList) error {
		idx := list.FindItem(itemID)
		if idx < 0 {
			return ErrItemNotFound
		}
		list.Items = append(list.Items[:idx], list.Items[idx+1:]...)
		return nil
	})
}

// ClearPurchased removes every purchased item and reports how many went.
func (s *ShoppingService) ClearPurchased(ctx context.Context, userID, listID uuid.UUID) (*ShoppingListResult, error) {
	removed := 0
	result, err := s.mutate(ctx, userID, listID, func(list *models.ShoppingList) error {
		var kept []models.ShoppingListItem
		kept, removed = shopping.RemovePurchased(list.Items)
		list.Items = datatypes.JSONSlice[models.ShoppingListItem](kept)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Removed = removed
	return result, nil
}

// mutate loads a list, applies fn and saves the result. Concurrent edits of
// the same list are last-write-wins.
func (s *ShoppingService) mutate(ctx context.Context, userID, listID uuid.UUID, fn func(*models.ShoppingList) error) (*ShoppingListResult, error) {
	list, err := s.load(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if err := fn(list); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, err
	}
	return newResult(list), nil
}

func (s *ShoppingService) load(ctx context.Context, userID, listID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", listID, userID).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShoppingListNotFound
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// saveGenerated stores generated items on the plan's list, creating the list
// if needed. When a concurrent request creates it first, the unique index on
// meal_plan_id rejects the insert and the existing list is updated instead.
func (s *ShoppingService) saveGenerated(ctx context.Context, plan *models.MealPlan, generated []models.ShoppingListItem) (*models.ShoppingList, error) {
	list, err := s.findForPlan(ctx, plan.UserID, plan.ID)
	if errors.Is(err, ErrShoppingListNotFound) {
		list = &models.ShoppingList{
			UserID:     plan.UserID,
			MealPlanID: &plan.ID,
			Name:       "Shopping list for " + planName(plan),
			Items:      datatypes.JSONSlice[models.ShoppingListItem](generated),
		}
		res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(list)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return list, nil
		}
		list, err = s.findForPlan(ctx, plan.UserID, plan.ID)
	}
	if err != nil {
		return nil, err
	}

	list.Items = datatypes.JSONSlice[models.ShoppingListItem](shopping.Replace(list.Items, generated))
	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ShoppingService) findForPlan(ctx context.Context, userID, planID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND meal_plan_id = ?", userID, planID).
		Order("created_at").
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShoppingListNotFound
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ShoppingService) fetchIngredients(ctx context.Context, recipeID int64) ([]shopping.Ingredient, error) {
	info, err := s.provider.GetRecipeInformation(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	ings := make([]shopping.Ingredient, 0, len(info.ExtendedIngredients))
	for _, ing := range info.ExtendedIngredients {
		name := ing.NameClean
		if name == "" {
			name = ing.Name
		}
		ings = append(ings, shopping.Ingredient{Name: name, Amount: ing.Amount, Unit: ing.Unit, Aisle: ing.Aisle})
	}
	return ings, nil
}

// recipeRefs lists each distinct recipe of the plan once, in plan order, and
// counts how many meals use it.
func recipeRefs(plan *models.MealPlan) ([]shopping.RecipeRef, map[int64]int) {
	titles := make(map[int64]string, len(plan.Meals))
	for _, m := range plan.Meals {
		if _, ok := titles[m.RecipeID]; !ok {
			titles[m.RecipeID] = m.Title
		}
	}
	ids, uses := plan.RecipeUses()
	refs := make([]shopping.RecipeRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, shopping.RecipeRef{RecipeID: id, Title: titles[id]})
	}
	return refs, uses
}

// perMeal repeats each fetched recipe once per meal that uses it so that
// ingredient amounts cover every planned meal.
func perMeal(recipes []shopping.RecipeIngredients, planned map[int64]int) []shopping.RecipeIngredients {
	out := make([]shopping.RecipeIngredients, 0, len(recipes))
	for _, r := range recipes {
		for range max(planned[r.RecipeID], 1) {
			out = append(out, r)
		}
	}
	return out
}

func planName(plan *models.MealPlan) string {
	if plan.Name != "" {
		return plan.Name
	}
	return plan.StartDate
}

func newResult(list *models.ShoppingList) *ShoppingListResult {
	return &ShoppingListResult{List: list, View: shopping.BuildView(list.Items)}
}
