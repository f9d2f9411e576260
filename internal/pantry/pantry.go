// Package pantry owns the user's on-hand ingredient inventory: an ordered
// in-memory collection with derived categories, mirrored to the store on a
// best-effort basis. Mutations are optimistic; a failed persist is reported
// through LastSyncError but never rolled back.
package pantry

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelelgendy/mealmind/backend/internal/models"
)

// Persister mirrors pantry state to the store. Nil when there is no session;
// mutations then stay local only.
type Persister interface {
	UpsertPantry(ctx context.Context, userID uuid.UUID, items []models.PantryItem) error
	ClearPantry(ctx context.Context, userID uuid.UUID) error
}

// Model is an ordered pantry, most-recent-first. Safe for concurrent use.
type Model struct {
	mu      sync.Mutex
	userID  uuid.UUID
	items   []models.PantryItem
	store   Persister
	logger  *zap.Logger
	syncErr error

	// persistMu serializes full-state writes. Held across snapshot and
	// store call so concurrent mutations cannot land out of order and
	// leave the remote missing the newer state.
	persistMu sync.Mutex
}

func NewModel(userID uuid.UUID, store Persister, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{userID: userID, store: store, logger: logger}
}

// Load replaces the model's contents, e.g. from a store read after sign-in.
func (m *Model) Load(items []models.PantryItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]models.PantryItem, len(items))
	copy(m.items, items)
}

// Add creates a pantry item and prepends it. Empty trimmed names are
// rejected as a no-op returning nil. Negative quantities are coerced to 0.
func (m *Model) Add(ctx context.Context, name string, quantity float64, unit string) *models.PantryItem {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if quantity < 0 {
		quantity = 0
	}

	item := models.PantryItem{
		ID:       uuid.New(),
		UserID:   m.userID,
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		Category: Categorize(name),
	}

	m.mu.Lock()
	m.items = append([]models.PantryItem{item}, m.items...)
	m.reposition()
	m.mu.Unlock()

	m.persist(ctx)
	return &item
}

// Update patches an item in place. Returns false when the id is unknown.
func (m *Model) Update(ctx context.Context, id uuid.UUID, name *string, quantity *float64, unit *string) bool {
	m.mu.Lock()
	var updated *models.PantryItem
	for i := range m.items {
		if m.items[i].ID == id {
			if name != nil {
				if trimmed := strings.TrimSpace(*name); trimmed != "" {
					m.items[i].Name = trimmed
					m.items[i].Category = Categorize(trimmed)
				}
			}
			if quantity != nil {
				q := *quantity
				if q < 0 {
					q = 0
				}
				m.items[i].Quantity = q
			}
			if unit != nil {
				m.items[i].Unit = *unit
			}
			updated = &m.items[i]
			break
		}
	}
	m.mu.Unlock()

	if updated == nil {
		return false
	}
	m.persist(ctx)
	return true
}

// Remove deletes an item. Returns false when the id is unknown.
func (m *Model) Remove(ctx context.Context, id uuid.UUID) bool {
	m.mu.Lock()
	found := false
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.reposition()
			found = true
			break
		}
	}
	m.mu.Unlock()

	if !found {
		return false
	}
	m.persist(ctx)
	return true
}

// Clear empties the pantry.
func (m *Model) Clear(ctx context.Context) {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()

	if m.store == nil {
		return
	}
	m.persistMu.Lock()
	defer m.persistMu.Unlock()
	if err := m.store.ClearPantry(ctx, m.userID); err != nil {
		m.recordSyncErr(err)
	} else {
		m.recordSyncErr(nil)
	}
}

// List returns a snapshot in display order, most recent first.
func (m *Model) List() []models.PantryItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.PantryItem, len(m.items))
	copy(out, m.items)
	return out
}

// Names returns the item names in display order, for the scorer.
func (m *Model) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.items))
	for i := range m.items {
		names[i] = m.items[i].Name
	}
	return names
}

// LastSyncError reports the outcome of the most recent persistence attempt.
func (m *Model) LastSyncError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncErr
}

// reposition renumbers Position fields after reordering. Caller holds mu.
func (m *Model) reposition() {
	for i := range m.items {
		m.items[i].Position = i
	}
}

func (m *Model) persist(ctx context.Context) {
	if m.store == nil {
		return
	}
	m.persistMu.Lock()
	defer m.persistMu.Unlock()
	snapshot := m.List()
	if err := m.store.UpsertPantry(ctx, m.userID, snapshot); err != nil {
		m.logger.Warn("pantry persist failed, keeping local state",
			zap.String("user_id", m.userID.String()),
			zap.Error(err))
		m.recordSyncErr(err)
		return
	}
	m.recordSyncErr(nil)
}

func (m *Model) recordSyncErr(err error) {
	m.mu.Lock()
	m.syncErr = err
	m.mu.Unlock()
}
