// Package shopping merges the ingredients of planned recipes into shopping
// list lines and arranges lists for display.
package shopping

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/pageza/mealwise/backend/internal/models"
)

// Ingredient is one line of a recipe's ingredient list as the provider reports it.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Aisle  string  `json:"aisle,omitempty"`
}

// RecipeIngredients is the ingredient list of one planned recipe.
type RecipeIngredients struct {
	RecipeID    int64
	Title       string
	Ingredients []Ingredient
}

type mergeKey struct {
	name string
	unit string
}

type line struct {
	item      models.ShoppingListItem
	recipeIDs map[int64]struct{}
	sum       float64
}

// Normalizer produces merge keys. It wraps a case folder, which carries
// state, so a Normalizer must not be shared between goroutines.
type Normalizer struct {
	fold cases.Caser
}

func NewNormalizer() *Normalizer {
	return &Normalizer{fold: cases.Fold()}
}

// Normalize case-folds s, trims it and collapses inner whitespace.
func (n *Normalizer) Normalize(s string) string {
	return n.fold.String(strings.Join(strings.Fields(s), " "))
}

// Aggregate merges the ingredients of recipes into generated shopping list
// items. Lines merge when their normalized name and unit are equal; different
// units of the same ingredient stay separate. Items come out in the order
// their key was first seen.
func Aggregate(recipes []RecipeIngredients) []models.ShoppingListItem {
	norm := NewNormalizer()
	index := make(map[mergeKey]*line)
	var order []*line

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			name := strings.Join(strings.Fields(ing.Name), " ")
			if name == "" {
				continue
			}
			key := mergeKey{name: norm.Normalize(name), unit: norm.Normalize(ing.Unit)}

			l, ok := index[key]
			if !ok {
				l = &line{
					item: models.ShoppingListItem{
						ID:     uuid.NewString(),
						Name:   name,
						Unit:   strings.TrimSpace(ing.Unit),
						Source: models.ItemSourceGenerated,
					},
					recipeIDs: make(map[int64]struct{}),
				}
				index[key] = l
				order = append(order, l)
			}

			if ing.Amount > 0 {
				l.sum += ing.Amount
			}
			if r.RecipeID != 0 {
				l.recipeIDs[r.RecipeID] = struct{}{}
			}
			if l.item.Aisle == "" {
				l.item.Aisle = providerAisle(ing.Aisle)
			}
		}
	}

	items := make([]models.ShoppingListItem, 0, len(order))
	for _, l := range order {
		item := l.item
		item.Amount = roundAmount(l.sum)
		item.RecipeIDs = sortedIDs(l.recipeIDs)
		if item.Aisle == "" {
			item.Aisle = InferAisle(norm.Normalize(item.Name))
		}
		items = append(items, item)
	}
	return items
}

// Replace builds the item list of a regenerated shopping list. Previously
// generated items are dropped in favour of generated; items the user added by
// hand are kept after them in their existing order.
func Replace(existing, generated []models.ShoppingListItem) []models.ShoppingListItem {
	out := make([]models.ShoppingListItem, 0, len(generated)+len(existing))
	out = append(out, generated...)
	for _, item := range existing {
		if item.IsManual() {
			out = append(out, item)
		}
	}
	return out
}

// roundAmount rounds to three decimals so sums do not depend on the order the
// recipes were added in.
func roundAmount(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
