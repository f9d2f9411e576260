package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile carries the preferences the scorer reads: diet, calorie goal,
// allergies and cuisine preferences. Macro goals ride along for the dashboard.
type UserProfile struct {
	ID                 uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username           string           `gorm:"size:50;not null" json:"username"`
	Diet               string           `gorm:"size:50" json:"diet"`
	CalorieGoal        float64          `gorm:"type:float" json:"calorie_goal"`
	Allergies          string           `gorm:"size:255" json:"allergies"`
	CuisinePreferences JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisine_preferences"`
	ProteinGoal        float64          `gorm:"type:float" json:"protein_goal"`
	CarbsGoal          float64          `gorm:"type:float" json:"carbs_goal"`
	FatGoal            float64          `gorm:"type:float" json:"fat_goal"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
}
