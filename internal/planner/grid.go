// Package planner owns the weekly meal-plan grid: a fully populated
// day × slot matrix of nullable recipe references.
package planner

import (
	"fmt"
	"strings"
	"sync"

	"github.com/abdelelgendy/mealmind/backend/internal/types"
)

// Days of the plan week, in display order.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Slots are the meal occasions within a day, in display order.
var Slots = []string{"breakfast", "lunch", "dinner"}

// CellKey addresses one cell of the grid.
type CellKey struct {
	Day  string
	Slot string
}

func (k CellKey) String() string {
	return k.Day + "/" + k.Slot
}

// ValidCell reports whether (day, slot) addresses a grid cell. Day and slot
// are matched case-insensitively.
func ValidCell(day, slot string) bool {
	return dayIndex(day) >= 0 && slotIndex(slot) >= 0
}

// NormalizeCell lowercases a (day, slot) pair, erroring on unknown values.
func NormalizeCell(day, slot string) (CellKey, error) {
	d := strings.ToLower(strings.TrimSpace(day))
	s := strings.ToLower(strings.TrimSpace(slot))
	if dayIndex(d) < 0 {
		return CellKey{}, fmt.Errorf("%w: unknown day %q", types.ErrValidation, day)
	}
	if slotIndex(s) < 0 {
		return CellKey{}, fmt.Errorf("%w: unknown slot %q", types.ErrValidation, slot)
	}
	return CellKey{Day: d, Slot: s}, nil
}

func dayIndex(day string) int {
	for i, d := range Days {
		if strings.EqualFold(d, day) {
			return i
		}
	}
	return -1
}

func slotIndex(slot string) int {
	for i, s := range Slots {
		if strings.EqualFold(s, slot) {
			return i
		}
	}
	return -1
}

// Grid is the full cross product of Days and Slots. Every cell is always
// addressable; a nil value means empty. Safe for concurrent use.
type Grid struct {
	mu    sync.RWMutex
	cells map[CellKey]*types.RecipeRef
}

func NewGrid() *Grid {
	g := &Grid{cells: make(map[CellKey]*types.RecipeRef, len(Days)*len(Slots))}
	for _, d := range Days {
		for _, s := range Slots {
			g.cells[CellKey{Day: d, Slot: s}] = nil
		}
	}
	return g
}

// Get returns the cell value, nil when empty or the key is invalid.
func (g *Grid) Get(key CellKey) *types.RecipeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ref := g.cells[key]
	if ref == nil {
		return nil
	}
	cp := *ref
	return &cp
}

// Set assigns a recipe to the cell; a nil ref clears it.
func (g *Grid) Set(key CellKey, ref *types.RecipeRef) error {
	if !ValidCell(key.Day, key.Slot) {
		return fmt.Errorf("%w: invalid cell %s", types.ErrValidation, key)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if ref == nil {
		g.cells[key] = nil
		return nil
	}
	cp := *ref
	g.cells[key] = &cp
	return nil
}

// Clear empties the cell.
func (g *Grid) Clear(key CellKey) error {
	return g.Set(key, nil)
}

// ClearAll empties every cell; the grid stays fully addressable.
func (g *Grid) ClearAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range g.cells {
		g.cells[k] = nil
	}
}

// MoveOrSwap moves the source value to the destination, swapping when the
// destination is occupied. Both writes happen under one lock so no observer
// sees the value in both cells or neither.
func (g *Grid) MoveOrSwap(from, to CellKey) error {
	if !ValidCell(from.Day, from.Slot) {
		return fmt.Errorf("%w: invalid cell %s", types.ErrValidation, from)
	}
	if !ValidCell(to.Day, to.Slot) {
		return fmt.Errorf("%w: invalid cell %s", types.ErrValidation, to)
	}
	if from == to {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cells[from], g.cells[to] = g.cells[to], g.cells[from]
	return nil
}

// Cells returns a snapshot of the full grid, including empty cells.
func (g *Grid) Cells() map[CellKey]*types.RecipeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[CellKey]*types.RecipeRef, len(g.cells))
	for k, v := range g.cells {
		if v == nil {
			out[k] = nil
			continue
		}
		cp := *v
		out[k] = &cp
	}
	return out
}

// Replace swaps in a whole new set of cell values, e.g. from a full remote
// read. Unknown keys are ignored; unmentioned cells become empty.
func (g *Grid) Replace(cells map[CellKey]*types.RecipeRef) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range g.cells {
		g.cells[k] = nil
	}
	for k, v := range cells {
		if _, ok := g.cells[k]; !ok || v == nil {
			continue
		}
		cp := *v
		g.cells[k] = &cp
	}
}
