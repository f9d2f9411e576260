package models

import (
	"time"

	"github.com/google/uuid"
)

// MealPlanEntry is one occupied cell of a user's weekly plan, keyed by
// (user, day, slot). Empty cells have no row.
type MealPlanEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_plan_cell,priority:1" json:"user_id"`
	Day       string    `gorm:"size:16;not null;uniqueIndex:idx_plan_cell,priority:2" json:"day"`
	Slot      string    `gorm:"size:16;not null;uniqueIndex:idx_plan_cell,priority:3" json:"slot"`
	RecipeID  string    `gorm:"size:64;not null" json:"recipe_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Image     string    `gorm:"size:512" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plan_entries"
}

// MealTrackingEntry records whether a planned meal was made or eaten.
// Independent of the plan cell; absence means untracked.
type MealTrackingEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_tracking_cell,priority:1" json:"user_id"`
	Day       string    `gorm:"size:16;not null;uniqueIndex:idx_tracking_cell,priority:2" json:"day"`
	Slot      string    `gorm:"size:16;not null;uniqueIndex:idx_tracking_cell,priority:3" json:"slot"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MealTrackingEntry) TableName() string {
	return "meal_tracking_entries"
}
