package shopping

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/mealwise/backend/internal/logger"
)

// DefaultFetchLimit bounds concurrent provider calls within one request.
const DefaultFetchLimit = 4

// RecipeRef identifies a planned recipe whose ingredients should be fetched.
type RecipeRef struct {
	RecipeID int64
	Title    string
}

// FetchFunc loads the ingredient list of one recipe.
type FetchFunc func(ctx context.Context, recipeID int64) ([]Ingredient, error)

// Warning reports a recipe left out of the aggregation.
type Warning struct {
	RecipeID int64  `json:"recipe_id"`
	Title    string `json:"title,omitempty"`
	Message  string `json:"message"`
}

// Collect fetches the ingredients of refs with at most limit calls in flight.
// A recipe whose fetch fails is skipped and reported as a warning. Results
// keep the order of refs. Only cancellation of ctx is returned as an error.
func Collect(ctx context.Context, refs []RecipeRef, fetch FetchFunc, limit int) ([]RecipeIngredients, []Warning, error) {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}

	results := make([]*RecipeIngredients, len(refs))
	failures := make([]error, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ings, err := fetch(gctx, ref.RecipeID)
			if err != nil {
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					return err
				}
				failures[i] = err
				return nil
			}
			results[i] = &RecipeIngredients{RecipeID: ref.RecipeID, Title: ref.Title, Ingredients: ings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		recipes  []RecipeIngredients
		warnings []Warning
	)
	for i, ref := range refs {
		if failures[i] != nil {
			logger.L().Warn("skipping recipe in shopping list",
				zap.Int64("recipe_id", ref.RecipeID),
				zap.Error(failures[i]),
			)
			warnings = append(warnings, Warning{
				RecipeID: ref.RecipeID,
				Title:    ref.Title,
				Message:  "ingredients could not be loaded",
			})
			continue
		}
		recipes = append(recipes, *results[i])
	}
	return recipes, warnings, nil
}
