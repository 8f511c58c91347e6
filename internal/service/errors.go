package service

import (
	"errors"
	"fmt"

	"github.com/pageza/mealwise/backend/internal/provider"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrMealPlanNotFound     = errors.New("meal plan not found")
	ErrMealNotFound         = errors.New("meal not found")
	ErrShoppingListNotFound = errors.New("shopping list not found")
	ErrItemNotFound         = errors.New("shopping list item not found")
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrRecipeNotSaved       = errors.New("recipe is not saved")
	ErrNoRecipesFound       = errors.New("no recipes match the current preferences")
	ErrProviderUnavailable  = errors.New("recipe provider unavailable")
	ErrStorageUnavailable   = errors.New("avatar storage is not configured")
	ErrUnsupportedImage     = errors.New("unsupported image type")
)

// providerError classifies an error from the recipe provider.
func providerError(err error) error {
	if errors.Is(err, provider.ErrNotFound) {
		return ErrRecipeNotFound
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}
