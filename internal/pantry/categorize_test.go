package pantry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdelelgendy/mealmind/backend/internal/pantry"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"chicken breast", pantry.CategoryProtein},
		{"Smoked Salmon", pantry.CategoryProtein},
		{"basmati rice", pantry.CategoryGrains},
		{"whole wheat bread", pantry.CategoryGrains},
		{"cheddar cheese", pantry.CategoryDairy},
		{"greek yogurt", pantry.CategoryDairy},
		{"strawberries", pantry.CategoryFruits},
		{"lime juice", pantry.CategoryFruits},
		{"red onion", pantry.CategoryVegetables},
		{"baby spinach", pantry.CategoryVegetables},
		{"olive oil", pantry.CategoryCondiments},
		{"soy sauce", pantry.CategoryCondiments},
		{"mystery item", pantry.CategoryOther},
		// Bare cheese varieties are not in the keyword table.
		{"cheddar", pantry.CategoryOther},
		{"", pantry.CategoryOther},
		{"   ", pantry.CategoryOther},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, pantry.Categorize(tc.name), "name %q", tc.name)
	}
}

func TestCategorizePriorityOrder(t *testing.T) {
	// Multi-category names resolve to the higher-priority category.
	assert.Equal(t, pantry.CategoryProtein, pantry.Categorize("chicken broth"))
	assert.Equal(t, pantry.CategoryProtein, pantry.Categorize("egg noodles"))
	assert.Equal(t, pantry.CategoryDairy, pantry.Categorize("peanut butter sauce"))
}
