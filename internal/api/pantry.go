package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/middleware"
	"github.com/abdelelgendy/mealmind/backend/internal/pantry"
	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

type PantryHandler struct {
	pantries *service.PantryManager
	auth     service.IAuthService
	logger   *zap.Logger
}

func NewPantryHandler(pantries *service.PantryManager, auth service.IAuthService, logger *zap.Logger) *PantryHandler {
	return &PantryHandler{pantries: pantries, auth: auth, logger: logger}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	p := router.Group("/pantry", middleware.AuthMiddleware(h.auth))
	{
		p.GET("", h.List)
		p.POST("", h.Add)
		p.PATCH("/:id", h.Update)
		p.DELETE("/:id", h.Remove)
		p.DELETE("", h.Clear)
	}
	// Static quick-select catalog; no auth needed.
	router.GET("/pantry/quick-select", h.QuickSelect)
}

// pantryResponse always reports the sync status alongside the items so the
// client can show "saved locally only" after a failed persist.
func (h *PantryHandler) respond(c *gin.Context, status int, m *pantry.Model) {
	var syncError string
	if err := m.LastSyncError(); err != nil {
		syncError = "could not save to your account; changes kept locally"
	}
	c.JSON(status, gin.H{
		"items":      m.List(),
		"sync_error": syncError,
	})
}

func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respond(c, http.StatusOK, h.pantries.ForUser(c.Request.Context(), userID))
}

func (h *PantryHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddPantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := h.pantries.ForUser(c.Request.Context(), userID)
	if item := m.Add(c.Request.Context(), req.Name, req.Quantity, req.Unit); item == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient name is required"})
		return
	}
	h.respond(c, http.StatusCreated, m)
}

func (h *PantryHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req types.UpdatePantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := h.pantries.ForUser(c.Request.Context(), userID)
	if !m.Update(c.Request.Context(), itemID, req.Name, req.Quantity, req.Unit) {
		c.JSON(http.StatusNotFound, gin.H{"error": "pantry item not found"})
		return
	}
	h.respond(c, http.StatusOK, m)
}

func (h *PantryHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	m := h.pantries.ForUser(c.Request.Context(), userID)
	if !m.Remove(c.Request.Context(), itemID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "pantry item not found"})
		return
	}
	h.respond(c, http.StatusOK, m)
}

func (h *PantryHandler) Clear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	m := h.pantries.ForUser(c.Request.Context(), userID)
	m.Clear(c.Request.Context())
	h.respond(c, http.StatusOK, m)
}

// QuickSelect serves the static quick-add ingredient catalog grouped by
// category.
func (h *PantryHandler) QuickSelect(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": quickSelectCatalog})
}
