package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedRecipe marks an external recipe as saved by a user. The row existing is
// the saved state.
type SavedRecipe struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_recipes_user_recipe" json:"user_id"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:idx_saved_recipes_user_recipe" json:"recipe_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Image     string    `gorm:"size:512" json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
