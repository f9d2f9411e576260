// Package api exposes the HTTP surface: auth, pantry, recipe search,
// meal plan (REST + WebSocket feed), favorites, tracking and profile.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// Deps bundles everything the handlers need.
type Deps struct {
	Auth     service.IAuthService
	Recipes  service.IRecipeService
	Pantries *service.PantryManager
	Plans    *service.PlanManager
	Store    store.Store
	Images   *service.ImageService
	Logger   *zap.Logger
}

// SetupAPI registers all routes under /api/v1.
func SetupAPI(router *gin.Engine, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	v1 := router.Group("/api/v1")
	{
		authHandler := NewAuthHandler(deps.Auth, deps.Logger)
		recipeHandler := NewRecipeHandler(deps.Recipes, deps.Auth, deps.Logger)
		pantryHandler := NewPantryHandler(deps.Pantries, deps.Auth, deps.Logger)
		planHandler := NewMealPlanHandler(deps.Plans, deps.Store, deps.Auth, deps.Logger)
		favoriteHandler := NewFavoriteHandler(deps.Store, deps.Auth, deps.Logger)
		profileHandler := NewProfileHandler(deps.Store, deps.Images, deps.Auth, deps.Logger)

		authHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		pantryHandler.RegisterRoutes(v1)
		planHandler.RegisterRoutes(v1)
		favoriteHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
	}
}

// currentUserID pulls the authenticated user from the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrOffline):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
