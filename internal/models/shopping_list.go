package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ItemSourceGenerated = "generated"
	ItemSourceManual    = "manual"
)

// ShoppingList belongs to a user and optionally to one meal plan. A meal plan
// has at most one list.
type ShoppingList struct {
	ID         uuid.UUID                             `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID                             `gorm:"type:varchar(36);not null;index" json:"user_id"`
	MealPlanID *uuid.UUID                            `gorm:"type:varchar(36);uniqueIndex:idx_shopping_lists_meal_plan_id" json:"meal_plan_id,omitempty"`
	Name       string                                `gorm:"size:100" json:"name"`
	Items      datatypes.JSONSlice[ShoppingListItem] `json:"items"`
	CreatedAt  time.Time                             `json:"created_at"`
	UpdatedAt  time.Time                             `json:"updated_at"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Items == nil {
		l.Items = datatypes.JSONSlice[ShoppingListItem]{}
	}
	return nil
}

// ShoppingListItem quantities are copies taken at generation time. RecipeIDs
// records provenance only and is not kept in sync with later plan edits.
type ShoppingListItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit"`
	Aisle     string  `json:"aisle"`
	RecipeIDs []int64 `json:"recipe_ids"`
	Purchased bool    `json:"purchased"`
	Source    string  `json:"source"`
}

// IsManual reports whether the user added the item by hand.
func (i ShoppingListItem) IsManual() bool {
	return i.Source == ItemSourceManual
}

// FindItem returns the index of the item with id, or -1.
func (l *ShoppingList) FindItem(id string) int {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return i
		}
	}
	return -1
}
