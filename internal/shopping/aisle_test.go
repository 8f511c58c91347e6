package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferAisleTableOrder(t *testing.T) {
	assert.Equal(t, "Canned and Jarred", InferAisle("coconut milk"))
	assert.Equal(t, "Spices and Seasonings", InferAisle("black pepper"))
	assert.Equal(t, "Produce", InferAisle("red bell pepper"))
	assert.Equal(t, "Frozen", InferAisle("vanilla ice cream"))
	assert.Equal(t, "Canned and Jarred", InferAisle("chicken broth"))
	assert.Equal(t, "Meat", InferAisle("chicken thighs"))
}

func TestProviderAisleKeepsFirstEntry(t *testing.T) {
	assert.Equal(t, "Produce", providerAisle(" Produce;Spices and Seasonings"))
	assert.Equal(t, "", providerAisle("?"))
	assert.Equal(t, "", providerAisle(""))
}
