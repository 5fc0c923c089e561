// Package gesture coordinates pointer gestures across cards.
//
// Each card gets at most one in-flight gesture session holding the
// drag or resize tracker. Sessions are independent per card, so
// simultaneous gestures on different cards (multi-touch) never share
// state; a second pointer on an already-gesturing card is ignored.
package gesture

import (
	"fmt"
	"sync"

	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/domain/geometry"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"go.uber.org/zap"
)

// BoundsSource supplies the live workspace measurement
type BoundsSource interface {
	Bounds() types.WorkspaceBounds
}

// Update describes the outcome of one pointer event: the card's new
// state and, during drags, an optional snap preview overlay.
type Update struct {
	Card    *types.Card        `json:"card"`
	Preview *types.SnapPreview `json:"preview,omitempty"`
}

// Controller routes pointer events to per-card gesture sessions
type Controller struct {
	// mu guards the session table and the trackers inside it; pointer
	// events for one card can arrive concurrently from the wire.
	mu       sync.Mutex
	sessions map[string]*session // Keyed by card ID

	cards  *card.Manager
	bounds BoundsSource
	logger *zap.Logger
}

type session struct {
	kind   types.GestureKind
	drag   geometry.DragTracker
	resize geometry.ResizeTracker
}

// NewController creates a gesture controller
func NewController(cards *card.Manager, bounds BoundsSource, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		sessions: make(map[string]*session),
		cards:    cards,
		bounds:   bounds,
		logger:   logger,
	}
}

// PointerDown starts a gesture on a card. Drags focus the card first,
// matching the click-to-raise behavior of the header. Returns an error
// for unknown or maximized cards; a second pointer-down while a
// session is active is silently ignored.
func (c *Controller) PointerDown(cardID string, kind types.GestureKind, edge types.ResizeEdge, x, y int) error {
	target, ok := c.cards.Get(cardID)
	if !ok {
		return fmt.Errorf("card not found: %s", cardID)
	}
	if target.Maximized {
		return fmt.Errorf("card is maximized: %s", cardID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, active := c.sessions[cardID]; active {
		c.logger.Debug("ignoring second pointer on active gesture",
			zap.String("card_id", cardID))
		return nil
	}

	s := &session{kind: kind}
	switch kind {
	case types.GestureDrag:
		c.cards.Focus(cardID)
		s.drag.Start(x, y, target.Position)
	case types.GestureResize:
		if !validEdge(edge) {
			return fmt.Errorf("invalid resize edge: %q", edge)
		}
		s.resize.Start(edge, x, y, geometry.RectOf(target.Position, target.Size))
	default:
		return fmt.Errorf("unknown gesture kind: %q", kind)
	}

	c.sessions[cardID] = s
	return nil
}

// PointerMove advances the active gesture. Drag proposals are clamped
// against the workspace bounds and produce a snap preview when the
// card nears an edge. Resize proposals apply the per-edge floor rules.
func (c *Controller) PointerMove(cardID string, x, y int) (*Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[cardID]
	if !ok {
		return nil, fmt.Errorf("no active gesture for card: %s", cardID)
	}

	bounds := c.bounds.Bounds()

	switch s.kind {
	case types.GestureDrag:
		pos, active := s.drag.Move(x, y)
		if !active {
			return nil, fmt.Errorf("drag not active for card: %s", cardID)
		}

		target, ok := c.cards.Get(cardID)
		if !ok {
			return nil, fmt.Errorf("card not found: %s", cardID)
		}

		clamped := geometry.Clamp(pos, target.Size, bounds)
		c.cards.Move(cardID, clamped)

		update := &Update{}
		rect := geometry.RectOf(clamped, target.Size)
		if preview, near := geometry.Preview(rect, bounds, geometry.SnapThreshold); near {
			update.Preview = &preview
		}

		moved, _ := c.cards.Get(cardID)
		update.Card = moved
		return update, nil

	default:
		rect, active := s.resize.Move(x, y)
		if !active {
			return nil, fmt.Errorf("resize not active for card: %s", cardID)
		}

		c.cards.Resize(cardID, rect.Position(), rect.Size())
		resized, _ := c.cards.Get(cardID)
		return &Update{Card: resized}, nil
	}
}

// PointerUp completes the gesture. Drag ends re-classify the final
// rect and commit a snap when it lands in a zone; the preview itself
// is only ever advisory.
func (c *Controller) PointerUp(cardID string) (*Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[cardID]
	delete(c.sessions, cardID)
	if !ok {
		return nil, fmt.Errorf("no active gesture for card: %s", cardID)
	}

	switch s.kind {
	case types.GestureDrag:
		s.drag.End()
	default:
		s.resize.End()
	}

	target, exists := c.cards.Get(cardID)
	if !exists {
		return nil, fmt.Errorf("card not found: %s", cardID)
	}

	if s.kind == types.GestureDrag {
		bounds := c.bounds.Bounds()
		rect := geometry.RectOf(target.Position, target.Size)
		if zone := geometry.Classify(rect, bounds, geometry.SnapThreshold); zone != types.SnapNone {
			c.cards.Snap(cardID, zone, bounds)
			target, _ = c.cards.Get(cardID)
		}
	}

	return &Update{Card: target}, nil
}

// PointerCancel aborts the gesture and restores the origin snapshot,
// undoing every intermediate move the gesture produced.
func (c *Controller) PointerCancel(cardID string) (*Update, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[cardID]
	delete(c.sessions, cardID)
	if !ok {
		return nil, fmt.Errorf("no active gesture for card: %s", cardID)
	}

	switch s.kind {
	case types.GestureDrag:
		if origin, active := s.drag.Cancel(); active {
			c.cards.Move(cardID, origin)
		}
	default:
		if origin, active := s.resize.Cancel(); active {
			c.cards.Resize(cardID, origin.Position(), origin.Size())
		}
	}

	target, exists := c.cards.Get(cardID)
	if !exists {
		return nil, fmt.Errorf("card not found: %s", cardID)
	}
	return &Update{Card: target}, nil
}

// Active reports whether a card has a gesture in flight
func (c *Controller) Active(cardID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.sessions[cardID]
	return ok
}

func validEdge(edge types.ResizeEdge) bool {
	switch edge {
	case types.EdgeNorth, types.EdgeSouth, types.EdgeEast, types.EdgeWest,
		types.EdgeNorthEast, types.EdgeNorthWest, types.EdgeSouthEast, types.EdgeSouthWest:
		return true
	}
	return false
}
