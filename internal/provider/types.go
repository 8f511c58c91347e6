package provider

import (
	"net/url"
	"strconv"
	"strings"
)

// RecipeSummary is the part of a recipe shown in lists and stored on meals.
type RecipeSummary struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Image           string  `json:"image,omitempty"`
	ImageType       string  `json:"imageType,omitempty"`
	ReadyInMinutes  int     `json:"readyInMinutes,omitempty"`
	Servings        int     `json:"servings,omitempty"`
	PricePerServing float64 `json:"pricePerServing,omitempty"`
}

// ExtendedIngredient is one ingredient line of a recipe.
type ExtendedIngredient struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	NameClean string  `json:"nameClean,omitempty"`
	Original  string  `json:"original,omitempty"`
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
	Aisle     string  `json:"aisle,omitempty"`
}

// RecipeInformation is the full provider record of a recipe.
type RecipeInformation struct {
	RecipeSummary
	Summary             string               `json:"summary,omitempty"`
	Instructions        string               `json:"instructions,omitempty"`
	SourceURL           string               `json:"sourceUrl,omitempty"`
	Cuisines            []string             `json:"cuisines,omitempty"`
	Diets               []string             `json:"diets,omitempty"`
	DishTypes           []string             `json:"dishTypes,omitempty"`
	ExtendedIngredients []ExtendedIngredient `json:"extendedIngredients"`
}

type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Nutrition is the per-serving nutrition of a recipe.
type Nutrition struct {
	Calories  string     `json:"calories"`
	Carbs     string     `json:"carbs"`
	Fat       string     `json:"fat"`
	Protein   string     `json:"protein"`
	Nutrients []Nutrient `json:"nutrients,omitempty"`
}

// SortRandom asks the provider for results in random order.
const SortRandom = "random"

// SearchParams filters a recipe search. Zero values are omitted from the request.
type SearchParams struct {
	Query              string
	Type               string
	Cuisines           []string
	Diet               string
	Intolerances       []string
	ExcludeIngredients []string
	MaxReadyTime       int
	MinCalories        int
	MaxCalories        int
	MinProtein         int
	MaxCarbs           int
	MaxFat             int
	Number             int
	Offset             int
	Sort               string
}

// Values encodes the params as query arguments. Encoding sorts keys, so equal
// params always produce the same string.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setInt := func(key string, val int) {
		if val > 0 {
			v.Set(key, strconv.Itoa(val))
		}
	}

	set("query", p.Query)
	set("type", p.Type)
	set("cuisine", strings.Join(p.Cuisines, ","))
	set("diet", p.Diet)
	set("intolerances", strings.Join(p.Intolerances, ","))
	set("excludeIngredients", strings.Join(p.ExcludeIngredients, ","))
	set("sort", p.Sort)
	setInt("maxReadyTime", p.MaxReadyTime)
	setInt("minCalories", p.MinCalories)
	setInt("maxCalories", p.MaxCalories)
	setInt("minProtein", p.MinProtein)
	setInt("maxCarbs", p.MaxCarbs)
	setInt("maxFat", p.MaxFat)
	setInt("number", p.Number)
	setInt("offset", p.Offset)
	return v
}

// SearchResult is one page of search results.
type SearchResult struct {
	Results      []RecipeSummary `json:"results"`
	Offset       int             `json:"offset"`
	Number       int             `json:"number"`
	TotalResults int             `json:"totalResults"`
}
