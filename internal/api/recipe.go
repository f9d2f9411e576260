package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	auth    service.IAuthService
	logger  *zap.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, auth service.IAuthService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, auth: auth, logger: logger}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", h.Search)
		recipes.GET("/:id", h.GetRecipe)
	}
}

// Search runs a catalog search annotated against the caller's pantry and
// profile when a bearer token is supplied. Anonymous searches work too.
func (h *RecipeHandler) Search(c *gin.Context) {
	query := c.Query("q")

	filters := types.SearchFilters{Diet: c.Query("diet")}
	if mc := c.Query("max_calories"); mc != "" {
		v, err := strconv.ParseFloat(mc, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_calories"})
			return
		}
		filters.MaxCalories = v
	}

	limit := 10
	if l := c.Query("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = v
	}

	userID := h.optionalUser(c)
	annotated, err := h.recipes.Search(c.Request.Context(), userID, query, filters, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": annotated})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// optionalUser resolves the bearer token when present without requiring it.
func (h *RecipeHandler) optionalUser(c *gin.Context) *uuid.UUID {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return nil
	}
	claims, err := h.auth.ValidateToken(header[len(prefix):])
	if err != nil {
		return nil
	}
	return &claims.UserID
}
