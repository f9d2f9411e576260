// Package scoring annotates catalog recipes with pantry, diet, allergen and
// calorie compatibility, and ranks them. Everything here is a pure function
// of (recipe, pantry, profile); it is safe to recompute on every request.
package scoring

import (
	"math"
	"strings"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
)

// CalorieTolerance is the slack over the calorie goal a recipe may use and
// still count as within target.
const CalorieTolerance = 1.10

// AnnotatedRecipe is a recipe plus derived compatibility fields. Never
// persisted; recomputed whenever the pantry or profile changes.
type AnnotatedRecipe struct {
	models.Recipe

	PantryCompatible    bool     `json:"pantry_compatible"`
	MissingIngredients  []string `json:"missing_ingredients"`
	PantryMatchPercent  int      `json:"pantry_match_percentage"`
	MatchesUserDiet     bool     `json:"matches_user_diet"`
	ContainsAllergens   bool     `json:"contains_allergens"`
	WithinCalorieTarget bool     `json:"within_calorie_target"`
	CalorieTargetDiff   float64  `json:"calorie_target_diff"`
}

// Annotate scores one recipe against the pantry and profile. A nil profile
// leaves the diet, allergen and calorie fields at their permissive defaults.
func Annotate(recipe models.Recipe, pantryNames []string, profile *models.UserProfile) AnnotatedRecipe {
	a := AnnotatedRecipe{
		Recipe:              recipe,
		MissingIngredients:  []string{},
		MatchesUserDiet:     true,
		WithinCalorieTarget: true,
	}

	annotatePantry(&a, pantryNames)

	if profile == nil {
		return a
	}

	if profile.Diet != "" {
		a.MatchesUserDiet = false
		for _, d := range recipe.Diets {
			if strings.EqualFold(d, profile.Diet) {
				a.MatchesUserDiet = true
				break
			}
		}
	}

	a.ContainsAllergens = containsAllergens(recipe, profile.Allergies)

	if profile.CalorieGoal > 0 && recipe.Calories > 0 {
		a.WithinCalorieTarget = recipe.Calories <= profile.CalorieGoal*CalorieTolerance
		a.CalorieTargetDiff = recipe.Calories - profile.CalorieGoal
	}

	return a
}

// AnnotateAll scores a list, preserving catalog order.
func AnnotateAll(recipes []models.Recipe, pantryNames []string, profile *models.UserProfile) []AnnotatedRecipe {
	out := make([]AnnotatedRecipe, len(recipes))
	for i, r := range recipes {
		out[i] = Annotate(r, pantryNames, profile)
	}
	return out
}

func annotatePantry(a *AnnotatedRecipe, pantryNames []string) {
	if len(a.Ingredients) == 0 {
		a.PantryCompatible = false
		return
	}

	lowered := make([]string, len(pantryNames))
	for i, n := range pantryNames {
		lowered[i] = strings.ToLower(strings.TrimSpace(n))
	}

	matched := 0
	for _, ing := range a.Ingredients {
		if ingredientInPantry(ing.Name, lowered) {
			matched++
		} else {
			a.MissingIngredients = append(a.MissingIngredients, ing.Name)
		}
	}

	a.PantryMatchPercent = int(math.Round(float64(matched) / float64(len(a.Ingredients)) * 100))
	a.PantryCompatible = len(a.MissingIngredients) == 0
}

// ingredientInPantry is a bidirectional case-insensitive substring match so
// that pantry "chicken" covers ingredient "chicken breast" and pantry
// "chicken breast" covers ingredient "chicken".
func ingredientInPantry(ingredient string, loweredPantry []string) bool {
	ing := strings.ToLower(strings.TrimSpace(ingredient))
	if ing == "" {
		return false
	}
	for _, p := range loweredPantry {
		if p == "" {
			continue
		}
		if strings.Contains(ing, p) || strings.Contains(p, ing) {
			return true
		}
	}
	return false
}

func containsAllergens(recipe models.Recipe, allergies string) bool {
	tokens := splitAllergens(allergies)
	if len(tokens) == 0 {
		return false
	}
	for _, ing := range recipe.Ingredients {
		name := strings.ToLower(ing.Name)
		for _, tok := range tokens {
			if strings.Contains(name, tok) {
				return true
			}
		}
	}
	return false
}

// splitAllergens tokenizes the comma-separated allergies field. Plural tokens
// also contribute their singular form so "nuts" flags "peanut butter".
func splitAllergens(allergies string) []string {
	var tokens []string
	for _, part := range strings.Split(allergies, ",") {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
		if strings.HasSuffix(tok, "s") && len(tok) > 2 {
			tokens = append(tokens, strings.TrimSuffix(tok, "s"))
		}
	}
	return tokens
}
