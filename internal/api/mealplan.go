package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/middleware"
	"github.com/abdelelgendy/mealmind/backend/internal/planner"
	"github.com/abdelelgendy/mealmind/backend/internal/service"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin from the web app.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type MealPlanHandler struct {
	plans    *service.PlanManager
	tracking store.TrackingStore
	auth     service.IAuthService
	logger   *zap.Logger
}

func NewMealPlanHandler(plans *service.PlanManager, tracking store.TrackingStore, auth service.IAuthService, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, tracking: tracking, auth: auth, logger: logger}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/mealplan", middleware.AuthMiddleware(h.auth))
	{
		plan.GET("", h.GetPlan)
		plan.PUT("/cell", h.SetCell)
		plan.DELETE("/cell/:day/:slot", h.ClearCell)
		plan.DELETE("", h.ClearAll)
		plan.POST("/move", h.Move)
		plan.POST("/refresh", h.Refresh)
		plan.GET("/ws", h.Feed)
		plan.GET("/tracking", h.ListTracking)
		plan.PUT("/tracking", h.TrackMeal)
	}
}

// planResponse renders the full grid, every cell present, empty cells null.
func (h *MealPlanHandler) planResponse(c *gin.Context, ctrl interface {
	Grid() *planner.Grid
	LastError() error
}) {
	cells := ctrl.Grid().Cells()
	out := make(map[string]map[string]*types.RecipeRef, len(planner.Days))
	for _, d := range planner.Days {
		out[d] = make(map[string]*types.RecipeRef, len(planner.Slots))
		for _, s := range planner.Slots {
			out[d][s] = cells[planner.CellKey{Day: d, Slot: s}]
		}
	}

	var syncError string
	if err := ctrl.LastError(); err != nil {
		syncError = "could not sync your plan; changes kept locally"
	}
	c.JSON(http.StatusOK, gin.H{
		"days":       planner.Days,
		"slots":      planner.Slots,
		"plan":       out,
		"sync_error": syncError,
	})
}

func (h *MealPlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.planResponse(c, h.plans.ForUser(c.Request.Context(), userID))
}

func (h *MealPlanHandler) SetCell(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SetPlanCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Recipe.RecipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id is required"})
		return
	}

	key, err := planner.NormalizeCell(req.Day, req.Slot)
	if err != nil {
		writeError(c, err)
		return
	}

	ctrl := h.plans.ForUser(c.Request.Context(), userID)
	if err := ctrl.SetCell(key, req.Recipe); err != nil {
		writeError(c, err)
		return
	}
	h.planResponse(c, ctrl)
}

func (h *MealPlanHandler) ClearCell(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key, err := planner.NormalizeCell(c.Param("day"), c.Param("slot"))
	if err != nil {
		writeError(c, err)
		return
	}

	ctrl := h.plans.ForUser(c.Request.Context(), userID)
	if err := ctrl.ClearCell(key); err != nil {
		writeError(c, err)
		return
	}
	h.planResponse(c, ctrl)
}

func (h *MealPlanHandler) ClearAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctrl := h.plans.ForUser(c.Request.Context(), userID)
	ctrl.ClearAll()
	h.planResponse(c, ctrl)
}

func (h *MealPlanHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.MovePlanCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := planner.NormalizeCell(req.FromDay, req.FromSlot)
	if err != nil {
		writeError(c, err)
		return
	}
	to, err := planner.NormalizeCell(req.ToDay, req.ToSlot)
	if err != nil {
		writeError(c, err)
		return
	}

	ctrl := h.plans.ForUser(c.Request.Context(), userID)
	if err := ctrl.MoveOrSwap(from, to); err != nil {
		writeError(c, err)
		return
	}
	h.planResponse(c, ctrl)
}

// Refresh replaces the local grid with a full remote read.
func (h *MealPlanHandler) Refresh(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctrl := h.plans.ForUser(c.Request.Context(), userID)
	if err := ctrl.RefreshPlan(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	h.planResponse(c, ctrl)
}

// Feed streams the user's plan change events over a WebSocket until the
// client disconnects. Unsubscribe is guaranteed on teardown.
func (h *MealPlanHandler) Feed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, cancel := h.plans.Subscribe(userID)
	defer cancel()

	// Reader goroutine: we never expect client messages, but reading is how
	// we notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}

func (h *MealPlanHandler) ListTracking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.tracking.ListTracking(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": entries})
}

func (h *MealPlanHandler) TrackMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.TrackMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != "made" && req.Status != "eaten" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be made or eaten"})
		return
	}

	key, err := planner.NormalizeCell(req.Day, req.Slot)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.tracking.UpsertTracking(c.Request.Context(), userID, key.Day, key.Slot, req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal tracked"})
}
