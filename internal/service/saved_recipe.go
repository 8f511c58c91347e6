package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealwise/backend/internal/imagecache"
	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/types"
)

// SavedRecipeService keeps the set of recipes a user has saved.
type SavedRecipeService struct {
	db       *gorm.DB
	provider provider.RecipeProvider
	images   *imagecache.Cache
}

var _ ISavedRecipeService = (*SavedRecipeService)(nil)

func NewSavedRecipeService(db *gorm.DB, p provider.RecipeProvider, images *imagecache.Cache) *SavedRecipeService {
	return &SavedRecipeService{db: db, provider: p, images: images}
}

// Save is idempotent: saving an already saved recipe returns the existing row.
// Missing title and image are looked up, but a failed lookup does not block
// the save.
func (s *SavedRecipeService) Save(ctx context.Context, userID uuid.UUID, req *types.SaveRecipeRequest) (*models.SavedRecipe, error) {
	recipeID := req.RecipeID.Int64()
	saved := &models.SavedRecipe{UserID: userID, RecipeID: recipeID, Title: req.Title, Image: req.Image}
	s.describe(ctx, saved)

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(saved).Error; err != nil {
		return nil, err
	}
	return s.find(ctx, s.db, userID, recipeID)
}

func (s *SavedRecipeService) Unsave(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.SavedRecipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotSaved
	}
	return nil
}

// Toggle flips the saved state and returns the new one.
func (s *SavedRecipeService) Toggle(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error) {
	saved := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.find(ctx, tx, userID, recipeID)
		if err == nil {
			return tx.Delete(existing).Error
		}
		if !errors.Is(err, ErrRecipeNotSaved) {
			return err
		}
		row := &models.SavedRecipe{UserID: userID, RecipeID: recipeID}
		s.describe(ctx, row)
		saved = true
		return tx.Create(row).Error
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

func (s *SavedRecipeService) IsSaved(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SavedRecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	recipes := []models.SavedRecipe{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *SavedRecipeService) find(ctx context.Context, db *gorm.DB, userID uuid.UUID, recipeID int64) (*models.SavedRecipe, error) {
	var saved models.SavedRecipe
	err := db.WithContext(ctx).Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&saved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotSaved
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *SavedRecipeService) describe(ctx context.Context, saved *models.SavedRecipe) {
	imageType := ""
	fetch := providerImage(s.provider)
	if saved.Title == "" {
		info, err := s.provider.GetRecipeInformation(ctx, saved.RecipeID)
		if err != nil {
			logger.L().Warn("recipe lookup failed while saving", zap.Int64("recipe_id", saved.RecipeID), zap.Error(err))
		} else {
			saved.Title = info.Title
			if saved.Image == "" {
				saved.Image = info.Image
			}
			imageType = info.ImageType
		}
		fetch = nil
	}
	saved.Image = s.images.Resolve(ctx, saved.RecipeID, saved.Image, fetch, func(id int64) string {
		return s.provider.ImageURL(id, "", imageType)
	})
}
