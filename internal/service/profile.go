package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/types"
)

const avatarURLExpiry = 24 * time.Hour

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProfileService handles user profile operations
type ProfileService struct {
	db    *gorm.DB
	store ObjectStore
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. store may be nil,
// in which case avatar uploads are rejected.
func NewProfileService(db *gorm.DB, store ObjectStore) *ProfileService {
	return &ProfileService{
		db:    db,
		store: store,
	}
}

// GetProfile returns the user with profile and preferences loaded. Missing
// rows are created so older accounts always read complete.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	user.Preferences = prefs
	return &user, nil
}

// UpdateProfile updates a user's profile
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.HouseholdSize != nil {
		profile.HouseholdSize = *req.HouseholdSize
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultPreferences(userID)
		if err := s.db.WithContext(ctx).Create(defaults).Error; err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences replaces every preference field with the request's values.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs.DietType = req.DietType
	prefs.Allergies = stringSlice(req.Allergies)
	prefs.DislikedIngredients = stringSlice(req.DislikedIngredients)
	prefs.CuisinePreferences = stringSlice(req.CuisinePreferences)
	prefs.CalorieTarget = req.CalorieTarget
	prefs.ProteinTarget = req.ProteinTarget
	prefs.CarbTarget = req.CarbTarget
	prefs.FatTarget = req.FatTarget
	prefs.MealCount = req.MealCount
	prefs.MaxCookingTime = req.MaxCookingTime
	prefs.BudgetPerMeal = req.BudgetPerMeal

	if err := s.db.WithContext(ctx).Save(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

// UploadAvatar stores the image and points the profile at it. The previous
// avatar object is removed on a best-effort basis.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, body io.Reader, size int64, contentType string) (*models.UserProfile, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	if err := s.store.Put(ctx, key, body, size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	previous := profile.AvatarKey
	profile.AvatarKey = key
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	if previous != "" {
		if err := s.store.Delete(ctx, previous); err != nil {
			logger.L().Warn("failed to delete previous avatar", zap.String("key", previous), zap.Error(err))
		}
	}

	s.presignAvatar(ctx, profile)
	return profile, nil
}

func (s *ProfileService) loadProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{UserID: userID}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	s.presignAvatar(ctx, &profile)
	return &profile, nil
}

func (s *ProfileService) presignAvatar(ctx context.Context, profile *models.UserProfile) {
	if s.store == nil || profile.AvatarKey == "" {
		return
	}
	url, err := s.store.PresignGet(ctx, profile.AvatarKey, avatarURLExpiry)
	if err != nil {
		logger.L().Warn("failed to presign avatar", zap.String("key", profile.AvatarKey), zap.Error(err))
		return
	}
	profile.AvatarURL = url
}

func stringSlice(in []string) datatypes.JSONSlice[string] {
	if in == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](in)
}
