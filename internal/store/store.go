// Package store is the persistent collaborator: per-user partitioned CRUD
// over Postgres plus a change feed for meal-plan mutations. Writes are
// last-write-wins by composite key; there is no version check.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// PlanEvent is one meal-plan mutation on the change feed. A nil Ref means
// the cell was cleared.
type PlanEvent struct {
	UserID     uuid.UUID        `json:"user_id"`
	Day        string           `json:"day"`
	Slot       string           `json:"slot"`
	Ref        *types.RecipeRef `json:"ref,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// Feed fans plan events out to per-user subscribers. Implementations must
// drop events for slow consumers rather than block publishers.
type Feed interface {
	Publish(ev PlanEvent)
	// Subscribe returns a channel of the user's plan events and a cancel
	// function that must be called on teardown.
	Subscribe(userID uuid.UUID) (<-chan PlanEvent, func())
}

// PantryStore persists a user's pantry as full-state batches.
type PantryStore interface {
	ListPantry(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error)
	// UpsertPantry replaces the user's pantry with the given items.
	UpsertPantry(ctx context.Context, userID uuid.UUID, items []models.PantryItem) error
	ClearPantry(ctx context.Context, userID uuid.UUID) error
}

// PlanStore persists meal-plan cells keyed by (user, day, slot).
type PlanStore interface {
	ListPlan(ctx context.Context, userID uuid.UUID) ([]models.MealPlanEntry, error)
	UpsertPlanCell(ctx context.Context, userID uuid.UUID, day, slot string, ref types.RecipeRef) error
	DeletePlanCell(ctx context.Context, userID uuid.UUID, day, slot string) error
	DeleteAllPlanCells(ctx context.Context, userID uuid.UUID) error
	SubscribePlan(userID uuid.UUID) (<-chan PlanEvent, func())
}

// FavoriteStore persists favorites, unique per (user, recipe).
type FavoriteStore interface {
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.RecipeFavorite, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, recipeID, title, image string) error
	RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error
}

// TrackingStore persists per-cell meal status ("made", "eaten").
type TrackingStore interface {
	ListTracking(ctx context.Context, userID uuid.UUID) ([]models.MealTrackingEntry, error)
	UpsertTracking(ctx context.Context, userID uuid.UUID, day, slot, status string) error
}

// ProfileStore persists the user's preferences.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, patch *types.UpdateProfileRequest) (*models.UserProfile, error)
}

// Store is the full persistent collaborator surface.
type Store interface {
	PantryStore
	PlanStore
	FavoriteStore
	TrackingStore
	ProfileStore
}
