package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/imagecache"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/types"
)

const defaultSearchNumber = 10

// dishTypes maps meal types to the provider's dish type vocabulary.
var dishTypes = map[string]string{
	models.MealTypeBreakfast: "breakfast",
	models.MealTypeLunch:     "main course",
	models.MealTypeDinner:    "main course",
	models.MealTypeSnack:     "snack",
}

// RecipeService reads recipes from the external provider.
type RecipeService struct {
	db       *gorm.DB
	provider provider.RecipeProvider
	images   *imagecache.Cache
}

var _ IRecipeService = (*RecipeService)(nil)

func NewRecipeService(db *gorm.DB, p provider.RecipeProvider, images *imagecache.Cache) *RecipeService {
	return &RecipeService{db: db, provider: p, images: images}
}

// Search queries the provider. Unless the query opts out, the user's
// preferences narrow the search the same way plan generation does.
func (s *RecipeService) Search(ctx context.Context, userID uuid.UUID, q *types.RecipeSearchQuery) (*provider.SearchResult, error) {
	params := provider.SearchParams{
		Query:        q.Query,
		Type:         dishTypes[q.MealType],
		MaxReadyTime: q.MaxReadyTime,
		Number:       q.Number,
		Offset:       q.Offset,
	}
	if q.Cuisine != "" {
		params.Cuisines = []string{q.Cuisine}
	}
	if params.Number == 0 {
		params.Number = defaultSearchNumber
	}

	if !q.IgnorePrefs {
		var prefs models.UserPreferences
		err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
		if err == nil {
			applyPreferences(&params, &prefs)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	result, err := s.provider.SearchRecipes(ctx, params)
	if err != nil {
		return nil, providerError(err)
	}
	for i := range result.Results {
		r := &result.Results[i]
		r.Image = s.images.Resolve(ctx, r.ID, r.Image, nil, s.fallbackImage(r.ImageType))
	}
	return result, nil
}

// Get returns recipe detail with a plain-text summary and a resolved image.
func (s *RecipeService) Get(ctx context.Context, recipeID int64) (*provider.RecipeInformation, error) {
	info, err := s.provider.GetRecipeInformation(ctx, recipeID)
	if err != nil {
		return nil, providerError(err)
	}
	detail := *info
	detail.Summary = provider.PlainText(info.Summary)
	detail.Instructions = provider.PlainText(info.Instructions)
	detail.Image = s.images.Resolve(ctx, recipeID, info.Image, nil, s.fallbackImage(info.ImageType))
	return &detail, nil
}

func (s *RecipeService) Nutrition(ctx context.Context, recipeID int64) (*provider.Nutrition, error) {
	n, err := s.provider.GetNutrition(ctx, recipeID)
	if err != nil {
		return nil, providerError(err)
	}
	return n, nil
}

// providerImage fetches a recipe's image from its provider record.
func providerImage(p provider.RecipeProvider) imagecache.FetchFunc {
	return func(ctx context.Context, recipeID int64) (string, error) {
		info, err := p.GetRecipeInformation(ctx, recipeID)
		if err != nil {
			return "", err
		}
		return info.Image, nil
	}
}

func (s *RecipeService) fallbackImage(imageType string) imagecache.FallbackFunc {
	return func(id int64) string {
		return s.provider.ImageURL(id, "", imageType)
	}
}

// applyPreferences narrows params by the user's preferences. Explicit query
// values win: a cuisine in the query replaces the preferred cuisines and the
// tighter of the two ready-time limits applies.
func applyPreferences(params *provider.SearchParams, prefs *models.UserPreferences) {
	params.Diet = prefs.DietType
	params.Intolerances = append([]string{}, prefs.Allergies...)
	params.ExcludeIngredients = append([]string{}, prefs.DislikedIngredients...)
	if len(params.Cuisines) == 0 {
		params.Cuisines = append([]string{}, prefs.CuisinePreferences...)
	}
	if prefs.MaxCookingTime > 0 && (params.MaxReadyTime == 0 || prefs.MaxCookingTime < params.MaxReadyTime) {
		params.MaxReadyTime = prefs.MaxCookingTime
	}

	meals := prefs.MealCount
	if meals <= 0 {
		meals = models.DefaultMealCount
	}
	if prefs.CalorieTarget > 0 {
		perMeal := prefs.CalorieTarget / meals
		params.MinCalories = perMeal / 2
		params.MaxCalories = perMeal * 5 / 4
	}
	if prefs.ProteinTarget > 0 {
		params.MinProtein = prefs.ProteinTarget / meals / 2
	}
	if prefs.CarbTarget > 0 {
		params.MaxCarbs = prefs.CarbTarget * 5 / 4 / meals
	}
	if prefs.FatTarget > 0 {
		params.MaxFat = prefs.FatTarget * 5 / 4 / meals
	}
}
