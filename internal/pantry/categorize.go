package pantry

import "strings"

// Pantry categories. Order of the keyword table below is a deliberate
// tie-break: an item matching keywords from two categories gets the earlier
// one (e.g. "chicken broth" is Protein, not Condiments).
const (
	CategoryProtein    = "Protein"
	CategoryVegetables = "Vegetables"
	CategoryFruits     = "Fruits"
	CategoryGrains     = "Grains"
	CategoryDairy      = "Dairy"
	CategoryCondiments = "Condiments"
	CategoryOther      = "Other"
)

type keywordEntry struct {
	keyword  string
	category string
}

// Static configuration, not logic. Keep priority order Protein → Grains →
// Dairy → Fruits → Vegetables → Condiments; first match wins.
var keywordTable = []keywordEntry{
	{"chicken", CategoryProtein},
	{"beef", CategoryProtein},
	{"pork", CategoryProtein},
	{"turkey", CategoryProtein},
	{"lamb", CategoryProtein},
	{"fish", CategoryProtein},
	{"salmon", CategoryProtein},
	{"tuna", CategoryProtein},
	{"shrimp", CategoryProtein},
	{"egg", CategoryProtein},
	{"tofu", CategoryProtein},
	{"bacon", CategoryProtein},
	{"sausage", CategoryProtein},
	{"ham", CategoryProtein},

	{"rice", CategoryGrains},
	{"pasta", CategoryGrains},
	{"bread", CategoryGrains},
	{"flour", CategoryGrains},
	{"oat", CategoryGrains},
	{"quinoa", CategoryGrains},
	{"noodle", CategoryGrains},
	{"cereal", CategoryGrains},
	{"tortilla", CategoryGrains},
	{"barley", CategoryGrains},

	{"milk", CategoryDairy},
	{"cheese", CategoryDairy},
	{"yogurt", CategoryDairy},
	{"butter", CategoryDairy},
	{"cream", CategoryDairy},

	{"apple", CategoryFruits},
	{"banana", CategoryFruits},
	{"orange", CategoryFruits},
	{"berr", CategoryFruits},
	{"grape", CategoryFruits},
	{"lemon", CategoryFruits},
	{"lime", CategoryFruits},
	{"mango", CategoryFruits},
	{"peach", CategoryFruits},
	{"pear", CategoryFruits},
	{"melon", CategoryFruits},
	{"pineapple", CategoryFruits},

	{"tomato", CategoryVegetables},
	{"onion", CategoryVegetables},
	{"garlic", CategoryVegetables},
	{"pepper", CategoryVegetables},
	{"carrot", CategoryVegetables},
	{"spinach", CategoryVegetables},
	{"lettuce", CategoryVegetables},
	{"broccoli", CategoryVegetables},
	{"cucumber", CategoryVegetables},
	{"potato", CategoryVegetables},
	{"mushroom", CategoryVegetables},
	{"celery", CategoryVegetables},
	{"zucchini", CategoryVegetables},
	{"cabbage", CategoryVegetables},
	{"kale", CategoryVegetables},

	{"oil", CategoryCondiments},
	{"vinegar", CategoryCondiments},
	{"sauce", CategoryCondiments},
	{"ketchup", CategoryCondiments},
	{"mustard", CategoryCondiments},
	{"mayo", CategoryCondiments},
	{"salt", CategoryCondiments},
	{"sugar", CategoryCondiments},
	{"honey", CategoryCondiments},
	{"spice", CategoryCondiments},
	{"syrup", CategoryCondiments},
	{"dressing", CategoryCondiments},
}

// Categorize returns the pantry category for an ingredient name using a
// case-insensitive substring match against the keyword table. First match
// wins; unmatched names fall back to Other.
func Categorize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return CategoryOther
	}
	for _, e := range keywordTable {
		if strings.Contains(n, e.keyword) {
			return e.category
		}
	}
	return CategoryOther
}
