// Package workspace owns the live workspace measurement and layout.
//
// The client pushes a new bounds measurement whenever its container
// box changes (event-driven, no polling); the manager reacts by
// re-fitting snapped, tiled, and floating cards to the new bounds.
package workspace

import (
	"fmt"
	"sort"
	"sync"

	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/domain/geometry"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"go.uber.org/zap"
)

// Defaults used before the first client measurement arrives
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// SwipeDirection selects stack-mode navigation
type SwipeDirection string

const (
	SwipeNext SwipeDirection = "next"
	SwipePrev SwipeDirection = "prev"
)

// Manager tracks workspace bounds and arranges cards per layout mode
type Manager struct {
	mu     sync.RWMutex
	bounds types.WorkspaceBounds // Protected by mu
	layout types.LayoutMode      // Protected by mu

	cards  *card.Manager
	logger *zap.Logger
}

// NewManager creates a workspace manager with default bounds
func NewManager(cards *card.Manager, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		bounds: types.WorkspaceBounds{Width: DefaultWidth, Height: DefaultHeight},
		layout: types.LayoutFloat,
		cards:  cards,
		logger: logger,
	}
}

// Bounds returns the current workspace measurement
func (m *Manager) Bounds() types.WorkspaceBounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bounds
}

// Layout returns the current layout mode
func (m *Manager) Layout() types.LayoutMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layout
}

// SetBounds records a new container measurement and re-fits every
// card: snapped cards get their zone rect recomputed, tiled layouts
// re-tile, and free-floating cards are re-clamped so none strands
// outside the shrunken workspace.
func (m *Manager) SetBounds(bounds types.WorkspaceBounds) error {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return fmt.Errorf("invalid bounds: %dx%d", bounds.Width, bounds.Height)
	}

	m.mu.Lock()
	m.bounds = bounds
	layout := m.layout
	m.mu.Unlock()

	m.logger.Debug("workspace bounds updated",
		zap.Int("width", bounds.Width),
		zap.Int("height", bounds.Height))

	switch layout {
	case types.LayoutGrid:
		m.retile(bounds)
	case types.LayoutStack:
		m.restack(bounds)
	default:
		m.refit(bounds)
	}

	return nil
}

// SetLayout switches the layout mode and arranges cards accordingly
func (m *Manager) SetLayout(mode types.LayoutMode) error {
	switch mode {
	case types.LayoutFloat, types.LayoutGrid, types.LayoutStack:
	default:
		return fmt.Errorf("unknown layout mode: %q", mode)
	}

	m.mu.Lock()
	m.layout = mode
	bounds := m.bounds
	m.mu.Unlock()

	switch mode {
	case types.LayoutGrid:
		m.retile(bounds)
	case types.LayoutStack:
		m.restack(bounds)
	}

	return nil
}

// Swipe moves stack-mode focus to the adjacent card in creation
// order, wrapping at the ends. Only meaningful in stack layout.
func (m *Manager) Swipe(direction SwipeDirection) (*types.Card, error) {
	if m.Layout() != types.LayoutStack {
		return nil, fmt.Errorf("swipe requires stack layout")
	}

	ordered := m.visibleByCreation()
	if len(ordered) == 0 {
		return nil, fmt.Errorf("no cards to swipe")
	}

	stats := m.cards.Stats()
	current := 0
	if stats.FocusedCardID != nil {
		for i, c := range ordered {
			if c.ID == *stats.FocusedCardID {
				current = i
				break
			}
		}
	}

	var next int
	switch direction {
	case SwipeNext:
		next = (current + 1) % len(ordered)
	case SwipePrev:
		next = (current - 1 + len(ordered)) % len(ordered)
	default:
		return nil, fmt.Errorf("unknown swipe direction: %q", direction)
	}

	target := ordered[next]
	m.cards.Focus(target.ID)

	focused, _ := m.cards.Get(target.ID)
	return focused, nil
}

// retile arranges visible cards into the grid, row-major by z-order.
// Tiling supersedes maximize, so any maximized card drops back to a
// slot like the rest.
func (m *Manager) retile(bounds types.WorkspaceBounds) {
	visible := m.visible()
	rects := geometry.GridLayout(len(visible), bounds)

	for i, c := range visible {
		if c.Maximized {
			m.cards.Unmaximize(c.ID)
		}
		m.cards.SetGeometry(c.ID, rects[i])
	}
}

// restack sizes every visible card to the full workspace
func (m *Manager) restack(bounds types.WorkspaceBounds) {
	rect := geometry.StackLayout(bounds)
	for _, c := range m.visible() {
		if c.Maximized {
			m.cards.Unmaximize(c.ID)
		}
		m.cards.SetGeometry(c.ID, rect)
	}
}

// refit re-applies snap rects, tracks a maximized card to the new
// bounds, and clamps floating cards
func (m *Manager) refit(bounds types.WorkspaceBounds) {
	for _, c := range m.visible() {
		if c.Maximized {
			m.cards.Remaximize(c.ID, bounds)
			continue
		}

		if c.SnapZone != types.SnapNone {
			if rect, ok := geometry.SnapRect(c.SnapZone, bounds); ok {
				m.cards.Resize(c.ID, rect.Position(), rect.Size())
			}
			continue
		}

		clamped := geometry.Clamp(c.Position, c.Size, bounds)
		if clamped != c.Position {
			m.cards.Move(c.ID, clamped)
		}
	}
}

// visible lists non-minimized cards in z order
func (m *Manager) visible() []*types.Card {
	var visible []*types.Card
	for _, c := range m.cards.List() {
		if !c.Minimized {
			visible = append(visible, c)
		}
	}
	return visible
}

// visibleByCreation lists non-minimized cards in a stable swipe order
func (m *Manager) visibleByCreation() []*types.Card {
	visible := m.visible()
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.Before(visible[j].CreatedAt)
	})
	return visible
}
