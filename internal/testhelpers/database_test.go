package testhelpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/models"
	"github.com/pageza/mealwise/backend/internal/provider"
	"github.com/pageza/mealwise/backend/internal/service"
)

func TestDatabaseSetup(t *testing.T) {
	db := NewSQLiteDB(t)
	assert.NotNil(t, db)

	user := CreateUser(t, db)
	assert.NotZero(t, user.ID)

	var loaded models.User
	err := db.Preload("Profile").Preload("Preferences").First(&loaded, "id = ?", user.ID).Error
	require.NoError(t, err)
	require.NotNil(t, loaded.Profile)
	require.NotNil(t, loaded.Preferences)
	assert.Equal(t, 1, loaded.Profile.HouseholdSize)
	assert.Equal(t, models.DefaultMealCount, loaded.Preferences.MealCount)

	// Each call gets its own database.
	other := NewSQLiteDB(t)
	var count int64
	require.NoError(t, other.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignTokenVerifies(t *testing.T) {
	verifier := service.NewHMACVerifier(TestAuthSecret, TestAuthIssuer, TestAuthAudience)

	claims, err := verifier.ValidateToken(SignToken(t, "idp|helper", "helper@example.com", time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "idp|helper", claims.Subject)
	assert.Equal(t, "helper@example.com", claims.Email)
}

func TestFakeProviderSearchesByDishType(t *testing.T) {
	fake := NewFakeProvider()
	fake.AddRecipe(Recipe(1, "Oats", "breakfast"))
	fake.AddRecipe(Recipe(2, "Stew", "main course"))

	res, err := fake.SearchRecipes(t.Context(), provider.SearchParams{Type: "breakfast"})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Oats", res.Results[0].Title)
	assert.Len(t, fake.Searches, 1)
}
