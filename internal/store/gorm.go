package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// GormStore is the Postgres-backed Store. Plan mutations are published on
// the feed after the row write commits.
type GormStore struct {
	db   *gorm.DB
	feed Feed
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, feed Feed) *GormStore {
	if feed == nil {
		feed = NewBroker()
	}
	return &GormStore{db: db, feed: feed}
}

// Feed exposes the change feed for subscribers.
func (s *GormStore) Feed() Feed {
	return s.feed
}

// --- Pantry ---

func (s *GormStore) ListPantry(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	var items []models.PantryItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertPantry replaces the user's pantry with the given items in one
// transaction, so removals on the client side are reflected remotely.
func (s *GormStore) UpsertPantry(ctx context.Context, userID uuid.UUID, items []models.PantryItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(items))
		for i := range items {
			items[i].UserID = userID
			keep = append(keep, items[i].ID)
		}

		del := tx.Where("user_id = ?", userID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&models.PantryItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "quantity", "unit", "category", "position", "updated_at"}),
		}).Create(&items).Error
	})
}

func (s *GormStore) ClearPantry(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PantryItem{}).Error
}

// --- Meal plan ---

func (s *GormStore) ListPlan(ctx context.Context, userID uuid.UUID) ([]models.MealPlanEntry, error) {
	var entries []models.MealPlanEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *GormStore) UpsertPlanCell(ctx context.Context, userID uuid.UUID, day, slot string, ref types.RecipeRef) error {
	entry := models.MealPlanEntry{
		ID:       uuid.New(),
		UserID:   userID,
		Day:      day,
		Slot:     slot,
		RecipeID: ref.RecipeID,
		Title:    ref.Title,
		Image:    ref.Image,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"recipe_id", "title", "image", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrRemoteWrite, err)
	}

	s.feed.Publish(PlanEvent{
		UserID:     userID,
		Day:        day,
		Slot:       slot,
		Ref:        &ref,
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *GormStore) DeletePlanCell(ctx context.Context, userID uuid.UUID, day, slot string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND slot = ?", userID, day, slot).
		Delete(&models.MealPlanEntry{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrRemoteWrite, err)
	}

	s.feed.Publish(PlanEvent{
		UserID:     userID,
		Day:        day,
		Slot:       slot,
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *GormStore) DeleteAllPlanCells(ctx context.Context, userID uuid.UUID) error {
	var entries []models.MealPlanEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return fmt.Errorf("%w: %v", types.ErrRemoteWrite, err)
	}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.MealPlanEntry{}).Error; err != nil {
		return fmt.Errorf("%w: %v", types.ErrRemoteWrite, err)
	}
	now := time.Now()
	for _, e := range entries {
		s.feed.Publish(PlanEvent{UserID: userID, Day: e.Day, Slot: e.Slot, OccurredAt: now})
	}
	return nil
}

func (s *GormStore) SubscribePlan(userID uuid.UUID) (<-chan PlanEvent, func()) {
	return s.feed.Subscribe(userID)
}

// --- Favorites ---

func (s *GormStore) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.RecipeFavorite, error) {
	var favs []models.RecipeFavorite
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}

func (s *GormStore) AddFavorite(ctx context.Context, userID uuid.UUID, recipeID, title, image string) error {
	fav := models.RecipeFavorite{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		Title:    title,
		Image:    image,
	}
	// Unique per (user, recipe): re-favoriting refreshes title/image.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "image", "updated_at"}),
	}).Create(&fav).Error
}

func (s *GormStore) RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.RecipeFavorite{}).Error
}

// --- Meal tracking ---

func (s *GormStore) ListTracking(ctx context.Context, userID uuid.UUID) ([]models.MealTrackingEntry, error) {
	var entries []models.MealTrackingEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *GormStore) UpsertTracking(ctx context.Context, userID uuid.UUID, day, slot, status string) error {
	entry := models.MealTrackingEntry{
		ID:     uuid.New(),
		UserID: userID,
		Day:    day,
		Slot:   slot,
		Status: status,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&entry).Error
}

// --- Profile ---

func (s *GormStore) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *GormStore) UpsertProfile(ctx context.Context, userID uuid.UUID, patch *types.UpdateProfileRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{ID: uuid.New(), UserID: userID}
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		profile.Username = *patch.Username
	}
	if patch.Diet != nil {
		profile.Diet = *patch.Diet
	}
	if patch.CalorieGoal != nil {
		if *patch.CalorieGoal < 0 {
			return nil, fmt.Errorf("%w: calorie goal must be non-negative", types.ErrValidation)
		}
		profile.CalorieGoal = *patch.CalorieGoal
	}
	if patch.Allergies != nil {
		profile.Allergies = *patch.Allergies
	}
	if patch.Cuisines != nil {
		profile.CuisinePreferences = models.JSONBStringArray(*patch.Cuisines)
	}
	if patch.ProteinGoal != nil {
		profile.ProteinGoal = *patch.ProteinGoal
	}
	if patch.CarbsGoal != nil {
		profile.CarbsGoal = *patch.CarbsGoal
	}
	if patch.FatGoal != nil {
		profile.FatGoal = *patch.FatGoal
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
