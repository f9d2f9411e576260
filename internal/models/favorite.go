package models

import (
	"time"

	"github.com/google/uuid"
)

type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe,priority:1" json:"user_id"`
	RecipeID  string    `gorm:"size:64;not null;uniqueIndex:idx_user_recipe,priority:2" json:"recipe_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Image     string    `gorm:"size:512" json:"image"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}
