package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/database"
	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/models"
)

// demoUser is a local account keyed by the subject a development identity
// provider would issue.
type demoUser struct {
	subject     string
	email       string
	displayName string
	household   int
	prefs       models.UserPreferences
}

var demoUsers = []demoUser{
	{
		subject:     "dev|omnivore",
		email:       "omnivore@example.com",
		displayName: "Olive Omnivore",
		household:   2,
		prefs: models.UserPreferences{
			CuisinePreferences: datatypes.JSONSlice[string]{"italian", "mexican"},
			CalorieTarget:      2200,
			MealCount:          3,
			MaxCookingTime:     45,
		},
	},
	{
		subject:     "dev|vegetarian",
		email:       "vegetarian@example.com",
		displayName: "Vera Vegetarian",
		household:   1,
		prefs: models.UserPreferences{
			DietType:            "vegetarian",
			Allergies:           datatypes.JSONSlice[string]{"peanut"},
			DislikedIngredients: datatypes.JSONSlice[string]{"mushrooms"},
			CalorieTarget:       1800,
			ProteinTarget:       90,
			MealCount:           4,
			BudgetPerMeal:       4.5,
		},
	},
	{
		subject:     "dev|keto",
		email:       "keto@example.com",
		displayName: "Kit Keto",
		household:   4,
		prefs: models.UserPreferences{
			DietType:      "ketogenic",
			Allergies:     datatypes.JSONSlice[string]{"gluten"},
			CalorieTarget: 2000,
			CarbTarget:    40,
			FatTarget:     150,
			MealCount:     2,
		},
	},
}

func main() {
	if err := logger.Init(config.IsProduction()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Named("seed")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to seed demo users in production")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	for _, demo := range demoUsers {
		created, err := seedUser(db, demo)
		if err != nil {
			log.Fatal("failed to seed user", zap.String("subject", demo.subject), zap.Error(err))
		}
		if !created {
			log.Info("user already exists, skipping", zap.String("subject", demo.subject))
			continue
		}
		log.Info("created demo user", zap.String("subject", demo.subject), zap.String("email", demo.email))
	}
}

func seedUser(db *gorm.DB, demo demoUser) (bool, error) {
	var existing models.User
	err := db.Where("subject = ?", demo.subject).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	return true, db.Transaction(func(tx *gorm.DB) error {
		user := &models.User{Subject: demo.subject, Email: demo.email}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.UserProfile{UserID: user.ID, DisplayName: demo.displayName, HouseholdSize: demo.household}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		prefs := models.DefaultPreferences(user.ID)
		prefs.DietType = demo.prefs.DietType
		prefs.CalorieTarget = demo.prefs.CalorieTarget
		prefs.ProteinTarget = demo.prefs.ProteinTarget
		prefs.CarbTarget = demo.prefs.CarbTarget
		prefs.FatTarget = demo.prefs.FatTarget
		prefs.MealCount = demo.prefs.MealCount
		prefs.MaxCookingTime = demo.prefs.MaxCookingTime
		prefs.BudgetPerMeal = demo.prefs.BudgetPerMeal
		if demo.prefs.Allergies != nil {
			prefs.Allergies = demo.prefs.Allergies
		}
		if demo.prefs.DislikedIngredients != nil {
			prefs.DislikedIngredients = demo.prefs.DislikedIngredients
		}
		if demo.prefs.CuisinePreferences != nil {
			prefs.CuisinePreferences = demo.prefs.CuisinePreferences
		}
		return tx.Create(prefs).Error
	})
}
