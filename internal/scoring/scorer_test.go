package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/scoring"
)

func recipeWith(ingredients ...string) models.Recipe {
	r := models.Recipe{ID: "r1", Title: "test recipe"}
	for _, name := range ingredients {
		r.Ingredients = append(r.Ingredients, models.Ingredient{Name: name})
	}
	return r
}

func TestAnnotatePantryMatch(t *testing.T) {
	recipe := recipeWith("chicken breast", "rice")

	a := scoring.Annotate(recipe, []string{"chicken"}, nil)
	assert.False(t, a.PantryCompatible)
	assert.Equal(t, []string{"rice"}, a.MissingIngredients)
	assert.Equal(t, 50, a.PantryMatchPercent)

	a = scoring.Annotate(recipe, []string{"chicken", "rice"}, nil)
	assert.True(t, a.PantryCompatible)
	assert.Empty(t, a.MissingIngredients)
	assert.Equal(t, 100, a.PantryMatchPercent)
}

func TestAnnotatePantryMatchIsBidirectional(t *testing.T) {
	// Pantry "chicken breast" still covers the shorter ingredient "chicken".
	a := scoring.Annotate(recipeWith("chicken"), []string{"chicken breast"}, nil)
	assert.True(t, a.PantryCompatible)
	assert.Equal(t, 100, a.PantryMatchPercent)
}

func TestAnnotatePantryMatchIsCaseInsensitive(t *testing.T) {
	a := scoring.Annotate(recipeWith("Chicken Breast"), []string{"CHICKEN"}, nil)
	assert.True(t, a.PantryCompatible)
}

func TestAnnotateEmptyIngredientList(t *testing.T) {
	a := scoring.Annotate(recipeWith(), []string{"chicken"}, nil)
	assert.False(t, a.PantryCompatible)
	assert.Empty(t, a.MissingIngredients)
	assert.Equal(t, 0, a.PantryMatchPercent)
}

func TestAnnotateEmptyPantry(t *testing.T) {
	a := scoring.Annotate(recipeWith("chicken", "rice"), nil, nil)
	assert.False(t, a.PantryCompatible)
	assert.Equal(t, []string{"chicken", "rice"}, a.MissingIngredients)
	assert.Equal(t, 0, a.PantryMatchPercent)
}

func TestAnnotateDietMatch(t *testing.T) {
	recipe := recipeWith("lentils")
	recipe.Diets = models.JSONBStringArray{"vegan", "gluten free"}

	profile := &models.UserProfile{Diet: "Vegan"}
	a := scoring.Annotate(recipe, nil, profile)
	assert.True(t, a.MatchesUserDiet)

	profile.Diet = "keto"
	a = scoring.Annotate(recipe, nil, profile)
	assert.False(t, a.MatchesUserDiet)

	// No diet set means every recipe matches.
	profile.Diet = ""
	a = scoring.Annotate(recipe, nil, profile)
	assert.True(t, a.MatchesUserDiet)
}

func TestAnnotateAllergens(t *testing.T) {
	recipe := recipeWith("peanut butter", "bread")

	profile := &models.UserProfile{Allergies: "nuts"}
	a := scoring.Annotate(recipe, nil, profile)
	assert.True(t, a.ContainsAllergens, "plural allergen token should flag singular ingredient")

	profile.Allergies = "shellfish, dairy"
	a = scoring.Annotate(recipe, nil, profile)
	assert.False(t, a.ContainsAllergens)

	profile.Allergies = ""
	a = scoring.Annotate(recipe, nil, profile)
	assert.False(t, a.ContainsAllergens)
}

func TestAnnotateCalorieTarget(t *testing.T) {
	recipe := recipeWith("pasta")
	recipe.Calories = 2150
	profile := &models.UserProfile{CalorieGoal: 2000}

	a := scoring.Annotate(recipe, nil, profile)
	assert.True(t, a.WithinCalorieTarget, "2150 is within 10%% of a 2000 goal")
	assert.InDelta(t, 150, a.CalorieTargetDiff, 0.001)

	recipe.Calories = 2300
	a = scoring.Annotate(recipe, nil, profile)
	assert.False(t, a.WithinCalorieTarget)
	assert.InDelta(t, 300, a.CalorieTargetDiff, 0.001)

	// Unknown calories or no goal stay permissive.
	recipe.Calories = 0
	a = scoring.Annotate(recipe, nil, profile)
	assert.True(t, a.WithinCalorieTarget)

	recipe.Calories = 2300
	a = scoring.Annotate(recipe, nil, &models.UserProfile{})
	assert.True(t, a.WithinCalorieTarget)
}

func TestAnnotateNilProfile(t *testing.T) {
	a := scoring.Annotate(recipeWith("egg"), nil, nil)
	assert.True(t, a.MatchesUserDiet)
	assert.False(t, a.ContainsAllergens)
	assert.True(t, a.WithinCalorieTarget)
}

func TestAnnotateAllPreservesOrder(t *testing.T) {
	recipes := []models.Recipe{recipeWith("a"), recipeWith("b"), recipeWith("c")}
	recipes[0].ID, recipes[1].ID, recipes[2].ID = "1", "2", "3"

	out := scoring.AnnotateAll(recipes, nil, nil)
	assert.Len(t, out, 3)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "2", out[1].ID)
	assert.Equal(t, "3", out[2].ID)
}
