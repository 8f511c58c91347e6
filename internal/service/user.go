package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/models"
)

// UserService maps identity-provider subjects to local users.
type UserService struct {
	db *gorm.DB
}

var _ IUserService = (*UserService)(nil)

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// EnsureUser returns the user for subject, creating it together with an empty
// profile and default preferences on first sight. A changed non-empty email
// is written back.
func (s *UserService) EnsureUser(ctx context.Context, subject, email string) (*models.User, error) {
	user, err := s.findBySubject(ctx, subject)
	if err == nil {
		if email != "" && user.Email != email {
			if err := s.db.WithContext(ctx).Model(user).Update("email", email).Error; err != nil {
				return nil, fmt.Errorf("failed to sync email: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{Subject: subject, Email: email}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserProfile{UserID: user.ID}).Error; err != nil {
			return err
		}
		return tx.Create(models.DefaultPreferences(user.ID)).Error
	})
	if err != nil {
		// A concurrent first request may have created the user already.
		if existing, findErr := s.findBySubject(ctx, subject); findErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.L().Info("created user", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").Preload("Preferences").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) findBySubject(ctx context.Context, subject string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("subject = ?", subject).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
