package types

// RegisterRequest is the sign-up payload. Preferences are optional.
type RegisterRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	Username    string   `json:"username" binding:"required"`
	Diet        string   `json:"diet"`
	CalorieGoal float64  `json:"calorie_goal"`
	Allergies   string   `json:"allergies"`
	Cuisines    []string `json:"cuisines"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest patches a profile; nil pointers leave fields untouched.
type UpdateProfileRequest struct {
	Username    *string   `json:"username,omitempty"`
	Diet        *string   `json:"diet,omitempty"`
	CalorieGoal *float64  `json:"calorie_goal,omitempty"`
	Allergies   *string   `json:"allergies,omitempty"`
	Cuisines    *[]string `json:"cuisines,omitempty"`
	ProteinGoal *float64  `json:"protein_goal,omitempty"`
	CarbsGoal   *float64  `json:"carbs_goal,omitempty"`
	FatGoal     *float64  `json:"fat_goal,omitempty"`
}

// AddPantryItemRequest is the add-ingredient payload.
type AddPantryItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// UpdatePantryItemRequest patches a pantry item.
type UpdatePantryItemRequest struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
}

// RecipeRef is the slice of a recipe that lives in a plan cell.
type RecipeRef struct {
	RecipeID string `json:"recipe_id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
}

// SetPlanCellRequest assigns a recipe to a (day, slot) cell.
type SetPlanCellRequest struct {
	Day    string    `json:"day" binding:"required"`
	Slot   string    `json:"slot" binding:"required"`
	Recipe RecipeRef `json:"recipe" binding:"required"`
}

// MovePlanCellRequest moves or swaps between two cells.
type MovePlanCellRequest struct {
	FromDay  string `json:"from_day" binding:"required"`
	FromSlot string `json:"from_slot" binding:"required"`
	ToDay    string `json:"to_day" binding:"required"`
	ToSlot   string `json:"to_slot" binding:"required"`
}

// TrackMealRequest records a "made" or "eaten" status for a cell.
type TrackMealRequest struct {
	Day    string `json:"day" binding:"required"`
	Slot   string `json:"slot" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// FavoriteRequest adds a recipe to the user's favorites.
type FavoriteRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
	Title    string `json:"title"`
	Image    string `json:"image"`
}

// SearchFilters narrows a catalog search.
type SearchFilters struct {
	Diet        string  `json:"diet"`
	MaxCalories float64 `json:"max_calories"`
}
