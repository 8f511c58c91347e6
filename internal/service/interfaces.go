package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealwise/backend/internal/mealplan"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/types"
)

// IUserService resolves identity-provider subjects to local users.
type IUserService interface {
	EnsureUser(ctx context.Context, subject, email string) (*models.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserPreferences, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, body io.Reader, size int64, contentType string) (*models.UserProfile, error)
}

// IRecipeService defines the interface for recipe lookups at the provider
type IRecipeService interface {
	Search(ctx context.Context, userID uuid.UUID, q *types.RecipeSearchQuery) (*provider.SearchResult, error)
	Get(ctx context.Context, recipeID int64) (*provider.RecipeInformation, error)
	Nutrition(ctx context.Context, recipeID int64) (*provider.Nutrition, error)
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	Generate(ctx context.Context, userID uuid.UUID, req *types.GenerateMealPlanRequest) (*GenerateResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error)
	Get(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error)
	Rename(ctx context.Context, userID, planID uuid.UUID, name string) (*models.MealPlan, error)
	Delete(ctx context.Context, userID, planID uuid.UUID) error
	AddMeal(ctx context.Context, userID, planID uuid.UUID, req *types.AddMealRequest) (*models.MealPlan, error)
	RemoveMeal(ctx context.Context, userID, planID uuid.UUID, mealID string) (*models.MealPlan, error)
	Calendar(ctx context.Context, userID, planID uuid.UUID, start, end string) (*mealplan.Calendar, error)
}

// ISavedRecipeService defines the interface for saved recipe operations
type ISavedRecipeService interface {
	Save(ctx context.Context, userID uuid.UUID, req *types.SaveRecipeRequest) (*models.SavedRecipe, error)
	Unsave(ctx context.Context, userID uuid.UUID, recipeID int64) error
	Toggle(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error)
	IsSaved(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error)
}

// IShoppingService defines the interface for shopping list operations
type IShoppingService interface {
	GenerateForMealPlan(ctx context.Context, userID, planID uuid.UUID) (*ShoppingListResult, error)
	GetForMealPlan(ctx context.Context, userID, planID uuid.UUID) (*ShoppingListResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (*ShoppingListResult, error)
	Get(ctx context.Context, userID, listID uuid.UUID) (*ShoppingListResult, error)
	Delete(ctx context.Context, userID, listID uuid.UUID) error
	AddItem(ctx context.Context, userID, listID uuid.UUID, req *types.AddShoppingItemRequest) (*ShoppingListResult, error)
	UpdateItem(ctx context.Context, userID, listID uuid.UUID, itemID string, req *types.UpdateShoppingItemRequest) (*ShoppingListResult, error)
	ToggleItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*ShoppingListResult, error)
	DeleteItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*ShoppingListResult, error)
	ClearPurchased(ctx context.Context, userID, listID uuid.UUID) (*ShoppingListResult, error)
}

// ObjectStore holds avatar images.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error)
}
