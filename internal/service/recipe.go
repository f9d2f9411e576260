package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abdelelgendy/mealmind/backend/internal/fallback"
	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/scoring"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// RecipeService combines the catalog (cache-first), the local recipe table
// and the scorer. Every recipe fetched from the catalog is persisted locally
// so search keeps working offline.
type RecipeService struct {
	db       *gorm.DB
	catalog  CatalogClient
	offline  CatalogClient
	cache    RecipeCache
	fb       *fallback.Controller
	profiles store.ProfileStore
	pantries store.PantryStore
	logger   *zap.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

func NewRecipeService(db *gorm.DB, live, offline CatalogClient, cache RecipeCache, fb *fallback.Controller, st store.Store, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		db:       db,
		catalog:  live,
		offline:  offline,
		cache:    cache,
		fb:       fb,
		profiles: st,
		pantries: st,
		logger:   logger,
	}
}

// Search queries the catalog (or the local/mock path when offline), then
// annotates and ranks results against the user's pantry and profile. An
// anonymous search returns annotated results with permissive defaults.
func (s *RecipeService) Search(ctx context.Context, userID *uuid.UUID, query string, filters types.SearchFilters, limit int) ([]scoring.AnnotatedRecipe, error) {
	remote := func(ctx context.Context) ([]models.Recipe, error) {
		recipes, err := s.catalog.Search(ctx, query, filters, limit)
		if err != nil {
			return nil, err
		}
		s.persistLocal(ctx, recipes)
		return recipes, nil
	}
	local := func(ctx context.Context) ([]models.Recipe, error) {
		recipes, err := s.searchLocal(ctx, query, filters, limit)
		if err == nil && len(recipes) > 0 {
			return recipes, nil
		}
		if err != nil {
			s.logger.Warn("local recipe search failed, using mock dataset", zap.Error(err))
		}
		return s.offline.Search(ctx, query, filters, limit)
	}

	recipes, err := fallback.Read(ctx, s.fb, "catalog.search", remote, local)
	if err != nil {
		return nil, err
	}

	pantryNames, profile := s.scoringInputs(ctx, userID)
	return scoring.Rank(scoring.AnnotateAll(recipes, pantryNames, profile)), nil
}

// GetByID resolves a recipe cache-first, then catalog, then the local table
// and mock dataset.
func (s *RecipeService) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	if s.cache != nil {
		if cached, _ := s.cache.GetByID(ctx, id); cached != nil {
			return cached, nil
		}
	}

	remote := func(ctx context.Context) (*models.Recipe, error) {
		recipe, err := s.catalog.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.persistLocal(ctx, []models.Recipe{*recipe})
		if s.cache != nil {
			s.cache.Put(ctx, recipe)
		}
		return recipe, nil
	}
	local := func(ctx context.Context) (*models.Recipe, error) {
		var recipe models.Recipe
		err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
		if err == nil {
			return &recipe, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("local recipe lookup failed", zap.String("id", id), zap.Error(err))
		}
		return s.offline.GetByID(ctx, id)
	}

	return fallback.Read(ctx, s.fb, "catalog.get", remote, local)
}

// searchLocal searches the persisted recipe table. On Postgres results are
// ordered by embedding distance to the query; elsewhere it is a plain
// keyword match.
func (s *RecipeService) searchLocal(ctx context.Context, query string, filters types.SearchFilters, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = 10
	}

	dbQuery := s.db.WithContext(ctx).Model(&models.Recipe{})

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where("LOWER(title) LIKE ?", like)
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			dbQuery = dbQuery.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		}
	}

	if filters.Diet != "" {
		like := "%" + strings.ToLower(filters.Diet) + "%"
		if s.db.Dialector.Name() == "postgres" {
			dbQuery = dbQuery.Where("LOWER(diets::text) LIKE ?", like)
		} else {
			dbQuery = dbQuery.Where("LOWER(diets) LIKE ?", like)
		}
	}

	if filters.MaxCalories > 0 {
		dbQuery = dbQuery.Where("calories > 0 AND calories <= ?", filters.MaxCalories)
	}

	var recipes []models.Recipe
	if err := dbQuery.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// persistLocal upserts fetched recipes into the local table. Best effort;
// a failure never breaks the read that produced them.
func (s *RecipeService) persistLocal(ctx context.Context, recipes []models.Recipe) {
	for i := range recipes {
		recipes[i].Embedding = GenerateEmbedding(recipes[i].Title)
	}
	if len(recipes) == 0 {
		return
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "image", "calories", "servings", "ready_in_minutes",
			"prep_time", "cook_time", "source_url", "source_name", "dish_types",
			"diets", "nutrients", "ingredients", "instructions", "updated_at",
		}),
	}).Create(&recipes).Error
	if err != nil {
		s.logger.Warn("persisting fetched recipes failed", zap.Error(err))
	}
}

func (s *RecipeService) scoringInputs(ctx context.Context, userID *uuid.UUID) ([]string, *models.UserProfile) {
	if userID == nil {
		return nil, nil
	}

	var pantryNames []string
	if items, err := s.pantries.ListPantry(ctx, *userID); err == nil {
		for _, it := range items {
			pantryNames = append(pantryNames, it.Name)
		}
	} else {
		s.logger.Warn("pantry read failed, scoring without pantry", zap.Error(err))
	}

	profile, err := s.profiles.GetProfile(ctx, *userID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		s.logger.Warn("profile read failed, scoring without profile", zap.Error(err))
	}
	return pantryNames, profile
}
