package api

// quickSelectCatalog is static configuration for the pantry quick-add UI.
// Categories mirror the pantry taxonomy.
type quickSelectCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

var quickSelectCatalog = []quickSelectCategory{
	{Category: "Protein", Items: []string{
		"chicken breast", "ground beef", "salmon", "eggs", "tofu", "shrimp", "bacon",
	}},
	{Category: "Grains", Items: []string{
		"rice", "pasta", "bread", "oats", "quinoa", "flour", "tortillas",
	}},
	{Category: "Dairy", Items: []string{
		"milk", "butter", "cheddar cheese", "greek yogurt", "heavy cream",
	}},
	{Category: "Fruits", Items: []string{
		"banana", "apple", "lemon", "blueberries", "orange", "avocado",
	}},
	{Category: "Vegetables", Items: []string{
		"onion", "garlic", "tomato", "spinach", "broccoli", "carrot", "bell pepper", "potato",
	}},
	{Category: "Condiments", Items: []string{
		"olive oil", "soy sauce", "salt", "black pepper", "honey", "mustard", "hot sauce",
	}},
}
