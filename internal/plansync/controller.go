// Package plansync reconciles the in-memory meal-plan grid with the store:
// optimistic local mutation, asynchronous remote write, change-feed ingestion
// with self-echo suppression.
package plansync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/planner"
	"github.com/abdelelgendy/mealmind/backend/internal/store"
	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

const (
	// defaultWriteTimeout bounds one remote write; after it the operation is
	// treated as failed and a late completion is ignored.
	defaultWriteTimeout = 8 * time.Second

	// defaultSuppressTTL bounds self-echo suppression per cell. Unconditional
	// expiry keeps a lost feed event from wedging suppression forever.
	defaultSuppressTTL = 1500 * time.Millisecond
)

// Controller owns one user's grid/store reconciliation. Local mutations win
// immediately; remote failures are surfaced through LastError and never roll
// the grid back. A later RefreshPlan reconciles divergence.
type Controller struct {
	userID uuid.UUID
	grid   *planner.Grid
	store  store.PlanStore
	logger *zap.Logger

	writeTimeout time.Duration
	suppressTTL  time.Duration

	mu       sync.Mutex
	inFlight map[planner.CellKey]time.Time
	lastErr  error

	wg sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithWriteTimeout overrides the remote write budget.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Controller) { c.writeTimeout = d }
}

// WithSuppressTTL overrides the self-echo suppression expiry.
func WithSuppressTTL(d time.Duration) Option {
	return func(c *Controller) { c.suppressTTL = d }
}

func NewController(userID uuid.UUID, grid *planner.Grid, planStore store.PlanStore, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		userID:       userID,
		grid:         grid,
		store:        planStore,
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
		suppressTTL:  defaultSuppressTTL,
		inFlight:     make(map[planner.CellKey]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Grid returns the controller's grid.
func (c *Controller) Grid() *planner.Grid {
	return c.grid
}

// SetCell assigns a recipe to a cell: grid first, remote upsert in the
// background.
func (c *Controller) SetCell(key planner.CellKey, ref types.RecipeRef) error {
	if err := c.grid.Set(key, &ref); err != nil {
		return err
	}
	c.markInFlight(key)
	c.push(func(ctx context.Context) error {
		return c.store.UpsertPlanCell(ctx, c.userID, key.Day, key.Slot, ref)
	}, key)
	return nil
}

// ClearCell empties a cell: grid first, remote delete in the background.
func (c *Controller) ClearCell(key planner.CellKey) error {
	if err := c.grid.Clear(key); err != nil {
		return err
	}
	c.markInFlight(key)
	c.push(func(ctx context.Context) error {
		return c.store.DeletePlanCell(ctx, c.userID, key.Day, key.Slot)
	}, key)
	return nil
}

// ClearAll empties the whole grid and deletes every remote cell.
func (c *Controller) ClearAll() {
	c.grid.ClearAll()
	for _, d := range planner.Days {
		for _, s := range planner.Slots {
			c.markInFlight(planner.CellKey{Day: d, Slot: s})
		}
	}
	c.pushAll(func(ctx context.Context) error {
		return c.store.DeleteAllPlanCells(ctx, c.userID)
	})
}

// MoveOrSwap moves the source cell's value to the destination, exchanging
// when the destination is occupied. Both cells mutate in one grid operation;
// the remote writes mirror the post-move state of both cells.
func (c *Controller) MoveOrSwap(from, to planner.CellKey) error {
	if err := c.grid.MoveOrSwap(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	srcAfter := c.grid.Get(from)
	dstAfter := c.grid.Get(to)

	c.markInFlight(from)
	c.markInFlight(to)
	c.push(func(ctx context.Context) error {
		if err := c.mirrorCell(ctx, to, dstAfter); err != nil {
			return err
		}
		return c.mirrorCell(ctx, from, srcAfter)
	}, from, to)
	return nil
}

func (c *Controller) mirrorCell(ctx context.Context, key planner.CellKey, ref *types.RecipeRef) error {
	if ref == nil {
		return c.store.DeletePlanCell(ctx, c.userID, key.Day, key.Slot)
	}
	return c.store.UpsertPlanCell(ctx, c.userID, key.Day, key.Slot, *ref)
}

// RefreshPlan replaces the whole grid from a full remote read. Used after
// sign-in and on manual refresh; this is the only divergence repair path.
func (c *Controller) RefreshPlan(ctx context.Context) error {
	entries, err := c.store.ListPlan(ctx, c.userID)
	if err != nil {
		return err
	}
	cells := make(map[planner.CellKey]*types.RecipeRef, len(entries))
	for _, e := range entries {
		key, err := planner.NormalizeCell(e.Day, e.Slot)
		if err != nil {
			c.logger.Warn("skipping plan row with invalid cell",
				zap.String("day", e.Day), zap.String("slot", e.Slot))
			continue
		}
		cells[key] = &types.RecipeRef{RecipeID: e.RecipeID, Title: e.Title, Image: e.Image}
	}
	c.grid.Replace(cells)
	c.setLastErr(nil)
	return nil
}

// Run consumes the store's change feed until ctx is done. Unsubscribe on
// teardown is guaranteed. Self-originated events arriving while the cell's
// in-flight mark is fresh are skipped.
func (c *Controller) Run(ctx context.Context) {
	events, cancel := c.store.SubscribePlan(c.userID)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.ingest(ev)
		}
	}
}

func (c *Controller) ingest(ev store.PlanEvent) {
	key, err := planner.NormalizeCell(ev.Day, ev.Slot)
	if err != nil {
		return
	}
	if c.suppressed(key) {
		c.logger.Debug("suppressed self-echo",
			zap.String("cell", key.String()))
		return
	}
	if err := c.grid.Set(key, ev.Ref); err != nil {
		c.logger.Warn("failed to apply remote plan event", zap.Error(err))
	}
}

// LastError reports the most recent remote write failure, nil after a
// success. This is the transient status the UI shows.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Wait blocks until all in-flight remote writes settle. Used on teardown and
// by tests.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// push runs one remote write in the background under the write timeout,
// clearing the cells' in-flight marks when it settles.
func (c *Controller) push(op func(context.Context) error, keys ...planner.CellKey) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout)
		defer cancel()

		err := op(ctx)
		if err != nil {
			if ctx.Err() != nil {
				err = types.ErrTimeout
			}
			c.logger.Warn("plan write failed, keeping local state",
				zap.String("user_id", c.userID.String()),
				zap.Error(err))
		}
		c.setLastErr(err)
		// Keep suppression alive for suppressTTL total even after a fast
		// settle so the echo already on the wire is still skipped, but never
		// longer than the TTL.
		if err != nil {
			c.clearInFlight(keys...)
		}
	}()
}

func (c *Controller) pushAll(op func(context.Context) error) {
	var keys []planner.CellKey
	for _, d := range planner.Days {
		for _, s := range planner.Slots {
			keys = append(keys, planner.CellKey{Day: d, Slot: s})
		}
	}
	c.push(op, keys...)
}

func (c *Controller) markInFlight(keys ...planner.CellKey) {
	now := time.Now()
	c.mu.Lock()
	for _, k := range keys {
		c.inFlight[k] = now.Add(c.suppressTTL)
	}
	c.mu.Unlock()
}

func (c *Controller) clearInFlight(keys ...planner.CellKey) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.inFlight, k)
	}
	c.mu.Unlock()
}

// suppressed reports whether the cell has a live in-flight mark, pruning
// expired ones as it goes.
func (c *Controller) suppressed(key planner.CellKey) bool {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	deadline, ok := c.inFlight[key]
	if !ok {
		return false
	}
	if now.After(deadline) {
		delete(c.inFlight, key)
		return false
	}
	return true
}

func (c *Controller) setLastErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}
