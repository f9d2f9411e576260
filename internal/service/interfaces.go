package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
	"github.com/abdelelgendy/mealmind/backend/internal/scoring"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// CatalogClient is the recipe catalog collaborator. The live HTTP client and
// the offline mock both satisfy it.
type CatalogClient interface {
	Search(ctx context.Context, query string, filters types.SearchFilters, limit int) ([]models.Recipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
}

// RecipeCache fronts catalog detail lookups. A nil recipe with nil error is
// a miss.
type RecipeCache interface {
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	Put(ctx context.Context, recipe *models.Recipe)
	Remove(ctx context.Context, id string)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for recipe search and detail
type IRecipeService interface {
	Search(ctx context.Context, userID *uuid.UUID, query string, filters types.SearchFilters, limit int) ([]scoring.AnnotatedRecipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
}
