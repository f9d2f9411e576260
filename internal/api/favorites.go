package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/middleware"
	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

type FavoriteHandler struct {
	favorites store.FavoriteStore
	auth      service.IAuthService
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites store.FavoriteStore, auth service.IAuthService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, auth: auth, logger: logger}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favs := router.Group("/favorites", middleware.AuthMiddleware(h.auth))
	{
		favs.GET("", h.List)
		favs.POST("", h.Add)
		favs.DELETE("/:recipeID", h.Remove)
	}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	favs, err := h.favorites.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.favorites.AddFavorite(c.Request.Context(), userID, req.RecipeID, req.Title, req.Image); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "recipe favorited"})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.favorites.RemoveFavorite(c.Request.Context(), userID, c.Param("recipeID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe unfavorited"})
}
