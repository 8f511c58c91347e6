package testhelpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/pageza/mealwise/backend/internal/provider"
)

// FakeProvider is an in-memory recipe provider. Searches return the
// summaries registered for the requested dish type.
type FakeProvider struct {
	mu        sync.Mutex
	recipes   map[int64]*provider.RecipeInformation
	byType    map[string][]provider.RecipeSummary
	failing   map[int64]error
	SearchErr error
	Searches  []provider.SearchParams
	InfoCalls int
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		recipes: make(map[int64]*provider.RecipeInformation),
		byType:  make(map[string][]provider.RecipeSummary),
		failing: make(map[int64]error),
	}
}

// AddRecipe registers a recipe and lists it under each of its dish types.
func (f *FakeProvider) AddRecipe(info *provider.RecipeInformation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipes[info.ID] = info
	for _, dish := range info.DishTypes {
		f.byType[dish] = append(f.byType[dish], info.RecipeSummary)
	}
}

// Fail makes lookups of id return err.
func (f *FakeProvider) Fail(id int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[id] = err
}

func (f *FakeProvider) SearchRecipes(ctx context.Context, params provider.SearchParams) (*provider.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Searches = append(f.Searches, params)
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	results := append([]provider.RecipeSummary{}, f.byType[params.Type]...)
	if params.Number > 0 && len(results) > params.Number {
		results = results[:params.Number]
	}
	return &provider.SearchResult{Results: results, Number: len(results), TotalResults: len(results)}, nil
}

func (f *FakeProvider) GetRecipeInformation(ctx context.Context, id int64) (*provider.RecipeInformation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InfoCalls++
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	info, ok := f.recipes[id]
	if !ok {
		return nil, provider.ErrNotFound
	}
	copied := *info
	return &copied, nil
}

func (f *FakeProvider) GetNutrition(ctx context.Context, id int64) (*provider.Nutrition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	if _, ok := f.recipes[id]; !ok {
		return nil, provider.ErrNotFound
	}
	return &provider.Nutrition{Calories: "420", Protein: "21g", Carbs: "50g", Fat: "12g"}, nil
}

func (f *FakeProvider) ImageURL(id int64, image, imageType string) string {
	if image != "" {
		return image
	}
	if imageType == "" {
		imageType = "jpg"
	}
	return fmt.Sprintf("https://img.example.com/recipes/%d-556x370.%s", id, imageType)
}

// Recipe builds a provider record with the given ingredients.
func Recipe(id int64, title, dishType string, ingredients ...provider.ExtendedIngredient) *provider.RecipeInformation {
	return &provider.RecipeInformation{
		RecipeSummary: provider.RecipeSummary{
			ID:              id,
			Title:           title,
			Image:           fmt.Sprintf("https://img.example.com/recipes/%d-312x231.jpg", id),
			ImageType:       "jpg",
			ReadyInMinutes:  30,
			Servings:        4,
			PricePerServing: 250,
		},
		Summary:             "<p>A <b>tasty</b> dish.</p>",
		DishTypes:           []string{dishType},
		ExtendedIngredients: ingredients,
	}
}
