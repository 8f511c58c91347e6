package mealplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/models"
)

func TestGroupByDateEveryMealInOneBucket(t *testing.T) {
	meals := []models.Meal{
		{ID: "a", Date: "2024-03-03"},
		{ID: "b", Date: "2024-03-01"},
		{ID: "c"},
		{ID: "d", Date: "2024-03-03T18:00:00Z"},
		{ID: "e", Date: "not a date"},
	}

	cal := GroupByDate(meals, "2024-03-01")

	count := make(map[string]int)
	for _, d := range cal.Days {
		for _, m := range d.Meals {
			count[m.ID]++
		}
	}
	assert.Len(t, count, len(meals))
	for id, n := range count {
		assert.Equal(t, 1, n, id)
	}

	require.Len(t, cal.Days, 2)
	assert.Equal(t, "2024-03-01", cal.StartDate)
	assert.Equal(t, "2024-03-03", cal.EndDate)
	assert.Equal(t, "2024-03-01", cal.Days[0].Date)
	assert.Len(t, cal.Days[0].Meals, 3)
	assert.Len(t, cal.Days[1].Meals, 2)
}

func TestGroupByDateNoMeals(t *testing.T) {
	cal := GroupByDate(nil, "2024-05-10")

	require.Len(t, cal.Days, 1)
	assert.Equal(t, "2024-05-10", cal.Days[0].Date)
	assert.NotNil(t, cal.Days[0].Meals)
	assert.Empty(t, cal.Days[0].Meals)
	assert.Equal(t, "2024-05-10", cal.StartDate)
	assert.Equal(t, "2024-05-10", cal.EndDate)
}

func TestGroupUsesPlanStartDate(t *testing.T) {
	plan := &models.MealPlan{StartDate: "2024-01-15", Meals: []models.Meal{{ID: "x"}}}
	cal := Group(plan)
	require.Len(t, cal.Days, 1)
	assert.Equal(t, "2024-01-15", cal.Days[0].Date)
}

func TestWindowFillsAndTrims(t *testing.T) {
	cal := GroupByDate([]models.Meal{
		{ID: "a", Date: "2024-03-01"},
		{ID: "b", Date: "2024-03-03"},
		{ID: "c", Date: "2024-03-09"},
	}, "2024-03-01")

	w, err := cal.Window("2024-03-02", "2024-03-04")
	require.NoError(t, err)

	require.Len(t, w.Days, 3)
	assert.Equal(t, []string{"2024-03-02", "2024-03-03", "2024-03-04"},
		[]string{w.Days[0].Date, w.Days[1].Date, w.Days[2].Date})
	assert.Empty(t, w.Days[0].Meals)
	assert.Len(t, w.Days[1].Meals, 1)
	assert.Equal(t, "2024-03-02", w.StartDate)
	assert.Equal(t, "2024-03-04", w.EndDate)
}

func TestWindowRejectsBadRanges(t *testing.T) {
	cal := GroupByDate(nil, "2024-03-01")

	_, err := cal.Window("2024-03-05", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = cal.Window("03/01/2024", "2024-03-05")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = cal.Window("2024-01-01", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestDateRangeCrossesMonth(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, DateRange(start, 3))
}
