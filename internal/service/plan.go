package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/planner"
	"github.com/abdelelgendy/mealmind/backend/internal/plansync"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
)

// PlanManager hands out one plan-sync controller per signed-in user. Each
// controller runs its change-feed loop until the manager shuts down.
type PlanManager struct {
	mu          sync.Mutex
	controllers map[uuid.UUID]*plansync.Controller
	store       store.PlanStore
	logger      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPlanManager(st store.PlanStore, logger *zap.Logger) *PlanManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &PlanManager{
		controllers: make(map[uuid.UUID]*plansync.Controller),
		store:       st,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// ForUser returns the user's plan controller, creating it and priming the
// grid from the store on first access.
func (pm *PlanManager) ForUser(ctx context.Context, userID uuid.UUID) *plansync.Controller {
	pm.mu.Lock()
	if c, ok := pm.controllers[userID]; ok {
		pm.mu.Unlock()
		return c
	}
	c := plansync.NewController(userID, planner.NewGrid(), pm.store, pm.logger)
	pm.controllers[userID] = c
	pm.wg.Add(1)
	go func() {
		defer pm.wg.Done()
		c.Run(pm.ctx)
	}()
	pm.mu.Unlock()

	if err := c.RefreshPlan(ctx); err != nil {
		pm.logger.Warn("initial plan refresh failed, starting empty",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
	return c
}

// Subscribe opens a change-feed subscription for one user, for pushing plan
// events out to connected clients.
func (pm *PlanManager) Subscribe(userID uuid.UUID) (<-chan store.PlanEvent, func()) {
	return pm.store.SubscribePlan(userID)
}

// Close stops every controller's feed loop and waits for in-flight writes.
func (pm *PlanManager) Close() {
	pm.cancel()
	pm.mu.Lock()
	for _, c := range pm.controllers {
		c.Wait()
	}
	pm.mu.Unlock()
	pm.wg.Wait()
}
