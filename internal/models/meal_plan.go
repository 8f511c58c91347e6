package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout is the ISO date format used for plan ranges and meal dates.
const DateLayout = "2006-01-02"

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// MealPlan belongs to one user and stores its meals as a JSON payload.
type MealPlan struct {
	ID        uuid.UUID                 `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID                 `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string                    `gorm:"size:100" json:"name"`
	StartDate string                    `gorm:"size:10;not null" json:"start_date"`
	EndDate   string                    `gorm:"size:10;not null" json:"end_date"`
	Meals     datatypes.JSONSlice[Meal] `json:"meals"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

func (m *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Meals == nil {
		m.Meals = datatypes.JSONSlice[Meal]{}
	}
	return nil
}

// Meal is one planned recipe. Date is optional; meals without one belong to
// the plan's start date.
type Meal struct {
	ID             string `json:"id"`
	RecipeID       int64  `json:"recipe_id"`
	MealType       string `json:"meal_type"`
	Title          string `json:"title"`
	Image          string `json:"image,omitempty"`
	ReadyInMinutes int    `json:"ready_in_minutes,omitempty"`
	Servings       int    `json:"servings,omitempty"`
	Date           string `json:"date,omitempty"`
}

// RecipeUses returns the distinct recipe ids of the plan in first-seen order
// and the number of meals that use each.
func (m *MealPlan) RecipeUses() ([]int64, map[int64]int) {
	uses := make(map[int64]int, len(m.Meals))
	ids := make([]int64, 0, len(m.Meals))
	for _, meal := range m.Meals {
		if meal.RecipeID <= 0 {
			continue
		}
		if uses[meal.RecipeID] == 0 {
			ids = append(ids, meal.RecipeID)
		}
		uses[meal.RecipeID]++
	}
	return ids, uses
}
