package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Nutrient is one entry of a recipe's nutrition table.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// IngredientList stores ingredients as JSONB
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// NutrientList stores nutrients as JSONB
type NutrientList []Nutrient

// Value implements the driver.Valuer interface
func (l NutrientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *NutrientList) Scan(value interface{}) error {
	if value == nil {
		*l = NutrientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is a catalog recipe normalized into our schema. The primary key is
// the catalog's own id so repeat fetches upsert instead of duplicating rows.
type Recipe struct {
	ID             string           `gorm:"size:64;primary_key" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	Title          string           `gorm:"size:255;not null" json:"title"`
	Image          string           `gorm:"size:512" json:"image"`
	Calories       float64          `gorm:"type:float" json:"calories"`
	Servings       int              `json:"servings"`
	ReadyInMinutes int              `json:"ready_in_minutes"`
	PrepTime       int              `json:"prep_time"`
	CookTime       int              `json:"cook_time"`
	SourceURL      string           `gorm:"size:512" json:"source_url"`
	SourceName     string           `gorm:"size:255" json:"source_name"`
	DishTypes      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dish_types"`
	Diets          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"diets"`
	Nutrients      NutrientList     `gorm:"type:jsonb;not null;default:'[]'" json:"nutrients"`
	Ingredients    IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Embedding      pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

// IngredientNames returns the recipe's ingredient names in list order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}
