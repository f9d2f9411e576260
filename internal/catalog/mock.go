package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// Mock is the offline catalog substitute. Same shape as the live client and
// the same query/diet/maxCalories filter semantics, over a static dataset.
type Mock struct {
	recipes []models.Recipe
}

func NewMock() *Mock {
	return &Mock{recipes: mockRecipes}
}

func (m *Mock) Search(ctx context.Context, query string, filters types.SearchFilters, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = 10
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var out []models.Recipe
	for _, r := range m.recipes {
		if q != "" && !strings.Contains(strings.ToLower(r.Title), q) {
			continue
		}
		if filters.Diet != "" && !hasDiet(r, filters.Diet) {
			continue
		}
		if filters.MaxCalories > 0 && r.Calories > filters.MaxCalories {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Mock) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	for _, r := range m.recipes {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: recipe %s", types.ErrNotFound, id)
}

func hasDiet(r models.Recipe, diet string) bool {
	for _, d := range r.Diets {
		if strings.EqualFold(d, diet) {
			return true
		}
	}
	return false
}

// mockRecipes is static configuration data for the offline path.
var mockRecipes = []models.Recipe{
	{
		ID:             "mock-1",
		Title:          "Grilled Chicken and Rice Bowl",
		Image:          "https://img.mealmind.dev/mock/chicken-rice.jpg",
		Calories:       620,
		Servings:       2,
		ReadyInMinutes: 35,
		PrepTime:       10,
		CookTime:       25,
		SourceName:     "MealMind Kitchen",
		DishTypes:      models.JSONBStringArray{"lunch", "dinner"},
		Diets:          models.JSONBStringArray{"gluten free"},
		Ingredients: models.IngredientList{
			{Name: "chicken breast", Amount: 2, Unit: "pieces"},
			{Name: "rice", Amount: 1, Unit: "cup"},
			{Name: "olive oil", Amount: 1, Unit: "tbsp"},
			{Name: "garlic", Amount: 2, Unit: "cloves"},
		},
		Instructions: models.JSONBStringArray{
			"Season the chicken and grill until cooked through.",
			"Cook the rice and toss with garlic and olive oil.",
			"Slice the chicken over the rice.",
		},
		Nutrients: models.NutrientList{
			{Name: "Calories", Amount: 620, Unit: "kcal"},
			{Name: "Protein", Amount: 52, Unit: "g"},
		},
	},
	{
		ID:             "mock-2",
		Title:          "Vegetarian Lentil Curry",
		Image:          "https://img.mealmind.dev/mock/lentil-curry.jpg",
		Calories:       480,
		Servings:       4,
		ReadyInMinutes: 45,
		PrepTime:       15,
		CookTime:       30,
		SourceName:     "MealMind Kitchen",
		DishTypes:      models.JSONBStringArray{"dinner"},
		Diets:          models.JSONBStringArray{"vegetarian", "vegan"},
		Ingredients: models.IngredientList{
			{Name: "lentils", Amount: 2, Unit: "cups"},
			{Name: "coconut milk", Amount: 1, Unit: "can"},
			{Name: "onion", Amount: 1, Unit: ""},
			{Name: "curry powder", Amount: 2, Unit: "tbsp"},
			{Name: "tomato", Amount: 2, Unit: ""},
		},
		Instructions: models.JSONBStringArray{
			"Sauté the onion, add curry powder.",
			"Add lentils, tomatoes and coconut milk; simmer until tender.",
		},
		Nutrients: models.NutrientList{
			{Name: "Calories", Amount: 480, Unit: "kcal"},
			{Name: "Protein", Amount: 22, Unit: "g"},
		},
	},
	{
		ID:             "mock-3",
		Title:          "Greek Yogurt Berry Parfait",
		Image:          "https://img.mealmind.dev/mock/parfait.jpg",
		Calories:       310,
		Servings:       1,
		ReadyInMinutes: 5,
		PrepTime:       5,
		SourceName:     "MealMind Kitchen",
		DishTypes:      models.JSONBStringArray{"breakfast"},
		Diets:          models.JSONBStringArray{"vegetarian", "gluten free"},
		Ingredients: models.IngredientList{
			{Name: "greek yogurt", Amount: 1, Unit: "cup"},
			{Name: "blueberries", Amount: 0.5, Unit: "cup"},
			{Name: "honey", Amount: 1, Unit: "tbsp"},
			{Name: "granola", Amount: 0.25, Unit: "cup"},
		},
		Instructions: models.JSONBStringArray{
			"Layer yogurt, berries and granola; drizzle with honey.",
		},
		Nutrients: models.NutrientList{
			{Name: "Calories", Amount: 310, Unit: "kcal"},
			{Name: "Protein", Amount: 18, Unit: "g"},
		},
	},
	{
		ID:             "mock-4",
		Title:          "Peanut Butter Banana Toast",
		Image:          "https://img.mealmind.dev/mock/pb-toast.jpg",
		Calories:       390,
		Servings:       1,
		ReadyInMinutes: 8,
		PrepTime:       5,
		CookTime:       3,
		SourceName:     "MealMind Kitchen",
		DishTypes:      models.JSONBStringArray{"breakfast", "snack"},
		Diets:          models.JSONBStringArray{"vegetarian"},
		Ingredients: models.IngredientList{
			{Name: "bread", Amount: 2, Unit: "slices"},
			{Name: "peanut butter", Amount: 2, Unit: "tbsp"},
			{Name: "banana", Amount: 1, Unit: ""},
		},
		Instructions: models.JSONBStringArray{
			"Toast the bread, spread peanut butter, top with banana slices.",
		},
		Nutrients: models.NutrientList{
			{Name: "Calories", Amount: 390, Unit: "kcal"},
			{Name: "Protein", Amount: 13, Unit: "g"},
		},
	},
	{
		ID:             "mock-5",
		Title:          "Baked Salmon with Vegetables",
		Image:          "https://img.mealmind.dev/mock/salmon.jpg",
		Calories:       540,
		Servings:       2,
		ReadyInMinutes: 30,
		PrepTime:       10,
		CookTime:       20,
		SourceName:     "MealMind Kitchen",
		DishTypes:      models.JSONBStringArray{"dinner"},
		Diets:          models.JSONBStringArray{"pescetarian", "gluten free"},
		Ingredients: models.IngredientList{
			{Name: "salmon fillet", Amount: 2, Unit: "pieces"},
			{Name: "broccoli", Amount: 1, Unit: "head"},
			{Name: "carrot", Amount: 2, Unit: ""},
			{Name: "lemon", Amount: 1, Unit: ""},
			{Name: "olive oil", Amount: 2, Unit: "tbsp"},
		},
		Instructions: models.JSONBStringArray{
			"Arrange salmon and vegetables on a tray, dress with oil and lemon.",
			"Bake at 200C for 20 minutes.",
		},
		Nutrients: models.NutrientList{
			{Name: "Calories", Amount: 540, Unit: "kcal"},
			{Name: "Protein", Amount: 42, Unit: "g"},
		},
	},
}
