package shopping

import "github.com/pageza/mealwise/backend/internal/models"

// AisleGroup is the unpurchased items of one aisle.
type AisleGroup struct {
	Aisle string                    `json:"aisle"`
	Items []models.ShoppingListItem `json:"items"`
}

// View is a shopping list arranged for display: unpurchased items grouped by
// aisle and purchased items listed separately. Every item is in exactly one
// of the two.
type View struct {
	Active    []AisleGroup              `json:"active"`
	Completed []models.ShoppingListItem `json:"completed"`
	Total     int                       `json:"total"`
	Remaining int                       `json:"remaining"`
}

// BuildView partitions items. Aisles appear in the order their first
// unpurchased item appears.
func BuildView(items []models.ShoppingListItem) View {
	v := View{
		Active:    []AisleGroup{},
		Completed: []models.ShoppingListItem{},
		Total:     len(items),
	}
	groups := make(map[string]int)

	for _, item := range items {
		if item.Purchased {
			v.Completed = append(v.Completed, item)
			continue
		}
		v.Remaining++

		aisle := item.Aisle
		if aisle == "" {
			aisle = DefaultAisle
		}
		idx, ok := groups[aisle]
		if !ok {
			idx = len(v.Active)
			groups[aisle] = idx
			v.Active = append(v.Active, AisleGroup{Aisle: aisle})
		}
		v.Active[idx].Items = append(v.Active[idx].Items, item)
	}
	return v
}

// RemovePurchased drops purchased items and reports how many were removed.
func RemovePurchased(items []models.ShoppingListItem) ([]models.ShoppingListItem, int) {
	kept := make([]models.ShoppingListItem, 0, len(items))
	for _, item := range items {
		if !item.Purchased {
			kept = append(kept, item)
		}
	}
	return kept, len(items) - len(kept)
}
