package types

import (
	"github.com/pageza/mealwise/backend/internal/recipeid"
)

// UpdateProfileRequest represents the request body for updating a profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName   *string `json:"display_name" binding:"omitempty,max=100"`
	HouseholdSize *int    `json:"household_size" binding:"omitempty,min=1,max=20"`
}

// UpdatePreferencesRequest replaces the user's preferences wholesale.
type UpdatePreferencesRequest struct {
	DietType            string   `json:"diet_type" binding:"omitempty,oneof=vegetarian vegan pescatarian ketogenic paleo primal whole30 gluten-free lacto-vegetarian ovo-vegetarian"`
	Allergies           []string `json:"allergies" binding:"max=20,dive,required,max=50"`
	DislikedIngredients []string `json:"disliked_ingredients" binding:"max=50,dive,required,max=50"`
	CuisinePreferences  []string `json:"cuisine_preferences" binding:"max=20,dive,required,max=50"`
	CalorieTarget       int      `json:"calorie_target" binding:"min=0,max=10000"`
	ProteinTarget       int      `json:"protein_target" binding:"min=0,max=1000"`
	CarbTarget          int      `json:"carb_target" binding:"min=0,max=1000"`
	FatTarget           int      `json:"fat_target" binding:"min=0,max=1000"`
	MealCount           int      `json:"meal_count" binding:"required,min=1,max=4"`
	MaxCookingTime      int      `json:"max_cooking_time" binding:"min=0,max=600"`
	BudgetPerMeal       float64  `json:"budget_per_meal" binding:"min=0,max=1000"`
}

// GenerateMealPlanRequest asks for a plan of Days days starting at StartDate.
// Both default when omitted: today and 7 days.
type GenerateMealPlanRequest struct {
	Name      string `json:"name" binding:"omitempty,max=100"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	Days      int    `json:"days" binding:"omitempty,min=1,max=14"`
}

type RenameMealPlanRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AddMealRequest adds one recipe to a plan. Title and image are looked up
// from the provider when missing.
type AddMealRequest struct {
	RecipeID recipeid.ID `json:"recipe_id" binding:"required"`
	MealType string      `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	Date     string      `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Title    string      `json:"title" binding:"omitempty,max=255"`
	Image    string      `json:"image" binding:"omitempty,max=512"`
	Servings int         `json:"servings" binding:"omitempty,min=1,max=50"`
}

type SaveRecipeRequest struct {
	RecipeID recipeid.ID `json:"recipe_id" binding:"required"`
	Title    string      `json:"title" binding:"omitempty,max=255"`
	Image    string      `json:"image" binding:"omitempty,max=512"`
}

type CreateShoppingListRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type AddShoppingItemRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Amount float64 `json:"amount" binding:"min=0"`
	Unit   string  `json:"unit" binding:"max=30"`
	Aisle  string  `json:"aisle" binding:"max=50"`
}

// UpdateShoppingItemRequest edits an item. Nil fields are left unchanged.
type UpdateShoppingItemRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Amount    *float64 `json:"amount" binding:"omitempty,min=0"`
	Unit      *string  `json:"unit" binding:"omitempty,max=30"`
	Aisle     *string  `json:"aisle" binding:"omitempty,max=50"`
	Purchased *bool    `json:"purchased"`
}

// RecipeSearchQuery is bound from the query string of /recipes/search.
type RecipeSearchQuery struct {
	Query        string `form:"q" binding:"max=200"`
	MealType     string `form:"type" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Cuisine      string `form:"cuisine" binding:"max=100"`
	MaxReadyTime int    `form:"max_ready_time" binding:"min=0,max=600"`
	Number       int    `form:"number" binding:"min=0,max=50"`
	Offset       int    `form:"offset" binding:"min=0,max=900"`
	IgnorePrefs  bool   `form:"ignore_preferences"`
}
