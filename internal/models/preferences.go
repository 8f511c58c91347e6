package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultMealCount is the number of meals per day when a user never set one.
const DefaultMealCount = 3

// UserPreferences is the filter and parameter set read by meal-plan generation.
// Targets of zero mean "no constraint".
type UserPreferences struct {
	ID                  uuid.UUID                   `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID              uuid.UUID                   `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DietType            string                      `gorm:"size:50" json:"diet_type"`
	Allergies           datatypes.JSONSlice[string] `json:"allergies"`
	DislikedIngredients datatypes.JSONSlice[string] `json:"disliked_ingredients"`
	CuisinePreferences  datatypes.JSONSlice[string] `json:"cuisine_preferences"`
	CalorieTarget       int                         `json:"calorie_target"`
	ProteinTarget       int                         `json:"protein_target"`
	CarbTarget          int                         `json:"carb_target"`
	FatTarget           int                         `json:"fat_target"`
	MealCount           int                         `gorm:"not null" json:"meal_count"`
	MaxCookingTime      int                         `json:"max_cooking_time"`
	BudgetPerMeal       float64                     `json:"budget_per_meal"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.MealCount == 0 {
		p.MealCount = DefaultMealCount
	}
	return nil
}

// DefaultPreferences returns the row created alongside a new user.
func DefaultPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		UserID:              userID,
		Allergies:           datatypes.JSONSlice[string]{},
		DislikedIngredients: datatypes.JSONSlice[string]{},
		CuisinePreferences:  datatypes.JSONSlice[string]{},
		MealCount:           DefaultMealCount,
	}
}
