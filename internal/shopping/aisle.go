package shopping

import "strings"

// DefaultAisle is used when neither the provider nor the keyword table places an ingredient.
const DefaultAisle = "Other"

type aisleRule struct {
	keyword string
	aisle   string
}

// aisleRules is matched in order against the normalized ingredient name and the
// first rule whose keyword is a substring wins. Specific phrases sit above the
// generic words they contain ("peanut butter" before "butter", "eggplant"
// before "egg").
var aisleRules = []aisleRule{
	{"eggplant", "Produce"},
	{"butternut", "Produce"},
	{"nutmeg", "Spices and Seasonings"},
	{"peanut butter", "Nut Butters, Jams, and Honey"},
	{"almond butter", "Nut Butters, Jams, and Honey"},
	{"ice cream", "Frozen"},
	{"frozen", "Frozen"},
	{"coconut milk", "Canned and Jarred"},
	{"black pepper", "Spices and Seasonings"},
	{"bell pepper", "Produce"},
	{"chili pepper", "Produce"},
	{"tomato paste", "Canned and Jarred"},
	{"tomato sauce", "Canned and Jarred"},
	{"canned", "Canned and Jarred"},
	{"broth", "Canned and Jarred"},
	{"stock", "Canned and Jarred"},
	{"soy sauce", "Ethnic Foods"},
	{"fish sauce", "Ethnic Foods"},
	{"olive oil", "Oil, Vinegar, Salad Dressing"},
	{"vinegar", "Oil, Vinegar, Salad Dressing"},
	{"oil", "Oil, Vinegar, Salad Dressing"},

	{"milk", "Milk, Eggs, Other Dairy"},
	{"butter", "Milk, Eggs, Other Dairy"},
	{"cream", "Milk, Eggs, Other Dairy"},
	{"yogurt", "Milk, Eggs, Other Dairy"},
	{"egg", "Milk, Eggs, Other Dairy"},
	{"cheese", "Cheese"},
	{"parmesan", "Cheese"},
	{"mozzarella", "Cheese"},

	{"chicken", "Meat"},
	{"beef", "Meat"},
	{"pork", "Meat"},
	{"bacon", "Meat"},
	{"sausage", "Meat"},
	{"turkey", "Meat"},
	{"lamb", "Meat"},
	{"salmon", "Seafood"},
	{"shrimp", "Seafood"},
	{"tuna", "Seafood"},
	{"cod", "Seafood"},

	{"salt", "Spices and Seasonings"},
	{"pepper", "Spices and Seasonings"},
	{"cumin", "Spices and Seasonings"},
	{"paprika", "Spices and Seasonings"},
	{"cinnamon", "Spices and Seasonings"},
	{"oregano", "Spices and Seasonings"},
	{"thyme", "Spices and Seasonings"},

	{"flour", "Baking"},
	{"sugar", "Baking"},
	{"baking", "Baking"},
	{"yeast", "Baking"},
	{"vanilla", "Baking"},
	{"pasta", "Pasta and Rice"},
	{"spaghetti", "Pasta and Rice"},
	{"noodle", "Pasta and Rice"},
	{"rice", "Pasta and Rice"},
	{"bread", "Bakery/Bread"},
	{"tortilla", "Bakery/Bread"},
	{"bean", "Canned and Jarred"},
	{"lentil", "Canned and Jarred"},
	{"nut", "Nuts"},
	{"almond", "Nuts"},

	{"garlic", "Produce"},
	{"onion", "Produce"},
	{"tomato", "Produce"},
	{"potato", "Produce"},
	{"carrot", "Produce"},
	{"lettuce", "Produce"},
	{"spinach", "Produce"},
	{"lemon", "Produce"},
	{"lime", "Produce"},
	{"apple", "Produce"},
	{"banana", "Produce"},
	{"avocado", "Produce"},
	{"basil", "Produce"},
	{"parsley", "Produce"},
	{"cilantro", "Produce"},
	{"ginger", "Produce"},
	{"mushroom", "Produce"},
	{"zucchini", "Produce"},
	{"broccoli", "Produce"},
	{"celery", "Produce"},
	{"cucumber", "Produce"},
}

// InferAisle places a normalized ingredient name using the keyword table.
func InferAisle(normalizedName string) string {
	for _, r := range aisleRules {
		if strings.Contains(normalizedName, r.keyword) {
			return r.aisle
		}
	}
	return DefaultAisle
}

// providerAisle cleans an aisle reported by the recipe provider. Multi-aisle
// values such as "Produce;Spices and Seasonings" keep the first entry.
func providerAisle(raw string) string {
	first, _, _ := strings.Cut(raw, ";")
	first = strings.TrimSpace(first)
	if first == "" || strings.EqualFold(first, "?") {
		return ""
	}
	return first
}
