package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/imagecache"
	"github.com/pageza/mealwise/backend/internal/service"
	"github.com/pageza/mealwise/backend/internal/testhelpers"
	"github.com/pageza/mealwise/backend/internal/types"
)

func TestSaveRecipeIsIdempotent(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db)
	fake := testhelpers.NewFakeProvider()
	fake.AddRecipe(testhelpers.Recipe(42, "Lasagna", "main course"))
	svc := service.NewSavedRecipeService(db, fake, imagecache.New())
	ctx := context.Background()

	first, err := svc.Save(ctx, user.ID, &types.SaveRecipeRequest{RecipeID: 42})
	require.NoError(t, err)
	assert.Equal(t, "Lasagna", first.Title)
	assert.NotEmpty(t, first.Image)

	second, err := svc.Save(ctx, user.ID, &types.SaveRecipeRequest{RecipeID: 42, Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Lasagna", second.Title)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaveRecipeToleratesLookupFailure(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db)
	fake := testhelpers.NewFakeProvider()
	fake.Fail(5, errors.New("timeout"))
	svc := service.NewSavedRecipeService(db, fake, imagecache.New())

	saved, err := svc.Save(context.Background(), user.ID, &types.SaveRecipeRequest{RecipeID: 5})
	require.NoError(t, err)
	assert.Equal(t, "", saved.Title)
	assert.Equal(t, "https://img.example.com/recipes/5-556x370.jpg", saved.Image)
}

func TestSaveRecipeWithTitleFetchesImage(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db)
	fake := testhelpers.NewFakeProvider()
	fake.AddRecipe(testhelpers.Recipe(9, "Curry", "main course"))
	images := imagecache.New()
	svc := service.NewSavedRecipeService(db, fake, images)

	saved, err := svc.Save(context.Background(), user.ID, &types.SaveRecipeRequest{RecipeID: 9, Title: "Curry"})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/recipes/9-312x231.jpg", saved.Image)
	assert.Equal(t, 1, fake.InfoCalls)

	cached, ok := images.Get(9)
	require.True(t, ok)
	assert.Equal(t, saved.Image, cached)
}

func TestToggleSavedRecipe(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db)
	fake := testhelpers.NewFakeProvider()
	fake.AddRecipe(testhelpers.Recipe(7, "Tacos", "main course"))
	svc := service.NewSavedRecipeService(db, fake, imagecache.New())
	ctx := context.Background()

	saved, err := svc.Toggle(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.True(t, saved)
	isSaved, err := svc.IsSaved(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.True(t, isSaved)

	saved, err = svc.Toggle(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.False(t, saved)
	isSaved, err = svc.IsSaved(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.False(t, isSaved)
}

func TestUnsaveRecipe(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db)
	fake := testhelpers.NewFakeProvider()
	svc := service.NewSavedRecipeService(db, fake, imagecache.New())
	ctx := context.Background()

	_, err := svc.Save(ctx, user.ID, &types.SaveRecipeRequest{RecipeID: 3, Title: "Bread", Image: "https://img/3.jpg"})
	require.NoError(t, err)
	assert.Zero(t, fake.InfoCalls, "no lookup when title is given")

	require.NoError(t, svc.Unsave(ctx, user.ID, 3))
	assert.ErrorIs(t, svc.Unsave(ctx, user.ID, 3), service.ErrRecipeNotSaved)
}
