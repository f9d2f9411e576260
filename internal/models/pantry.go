package models

import (
	"time"

	"github.com/google/uuid"
)

// PantryItem is one on-hand ingredient. Name is the case-insensitive match
// key the scorer uses; Category is derived, never user-supplied.
type PantryItem struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Quantity  float64   `gorm:"type:float;not null;default:0" json:"quantity"`
	Unit      string    `gorm:"size:50" json:"unit"`
	Category  string    `gorm:"size:50" json:"category"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PantryItem) TableName() string {
	return "pantry_items"
}
