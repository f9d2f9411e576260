package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/pantry"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
)

// PantryManager hands out one pantry model per signed-in user, loading it
// from the store on first access. Models live for the process lifetime; the
// store stays the source of truth across restarts.
type PantryManager struct {
	mu     sync.Mutex
	models map[uuid.UUID]*pantry.Model
	store  store.PantryStore
	logger *zap.Logger
}

func NewPantryManager(st store.PantryStore, logger *zap.Logger) *PantryManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PantryManager{
		models: make(map[uuid.UUID]*pantry.Model),
		store:  st,
		logger: logger,
	}
}

// ForUser returns the user's pantry model, hydrating it from the store on
// first access. A failed hydration still returns a usable empty model and
// mutations proceed locally.
func (pm *PantryManager) ForUser(ctx context.Context, userID uuid.UUID) *pantry.Model {
	pm.mu.Lock()
	if m, ok := pm.models[userID]; ok {
		pm.mu.Unlock()
		return m
	}
	m := pantry.NewModel(userID, pm.store, pm.logger)
	pm.models[userID] = m
	pm.mu.Unlock()

	items, err := pm.store.ListPantry(ctx, userID)
	if err != nil {
		pm.logger.Warn("pantry hydration failed, starting empty",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return m
	}
	m.Load(items)
	return m
}
