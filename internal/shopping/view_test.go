package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealwise/backend/internal/models"
)

func TestBuildViewPartitionsDisjointAndExhaustive(t *testing.T) {
	items := []models.ShoppingListItem{
		{ID: "1", Name: "garlic", Aisle: "Produce"},
		{ID: "2", Name: "milk", Aisle: "Milk, Eggs, Other Dairy", Purchased: true},
		{ID: "3", Name: "chicken", Aisle: "Meat"},
		{ID: "4", Name: "onion", Aisle: "Produce"},
		{ID: "5", Name: "mystery"},
	}

	v := BuildView(items)

	seen := make(map[string]int)
	for _, g := range v.Active {
		for _, item := range g.Items {
			assert.False(t, item.Purchased)
			seen[item.ID]++
		}
	}
	for _, item := range v.Completed {
		assert.True(t, item.Purchased)
		seen[item.ID]++
	}
	assert.Len(t, seen, len(items))
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}

	require.Len(t, v.Active, 3)
	assert.Equal(t, "Produce", v.Active[0].Aisle)
	assert.Equal(t, "Meat", v.Active[1].Aisle)
	assert.Equal(t, DefaultAisle, v.Active[2].Aisle)
	assert.Len(t, v.Active[0].Items, 2)
	assert.Equal(t, 5, v.Total)
	assert.Equal(t, 4, v.Remaining)
}

func TestBuildViewEmpty(t *testing.T) {
	v := BuildView(nil)
	assert.NotNil(t, v.Active)
	assert.NotNil(t, v.Completed)
	assert.Zero(t, v.Total)
}

func TestRemovePurchased(t *testing.T) {
	kept, removed := RemovePurchased([]models.ShoppingListItem{
		{ID: "a", Purchased: true}, {ID: "b"}, {ID: "c", Purchased: true},
	})
	assert.Equal(t, 2, removed)
	require.Len(t, kept, 1)
	assert.Equal(t, "b", kept[0].ID)
}
