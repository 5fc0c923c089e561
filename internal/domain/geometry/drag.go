package geometry

import "github.com/HobbyCoders/deck/internal/shared/types"

// DragTracker is the idle → dragging → idle state machine for one card.
// It captures an origin snapshot on pointer-down and converts each
// pointer-move into a proposed position. It never clamps; the owner of
// the card state decides what to do with the proposal.
type DragTracker struct {
	active bool

	pointerX int
	pointerY int
	origin   types.CardPosition
}

// Start begins a drag gesture, capturing the pointer and card origins.
// Returns false if a gesture is already in flight; a second pointer
// going down on the same card is ignored rather than restarting.
func (t *DragTracker) Start(pointerX, pointerY int, origin types.CardPosition) bool {
	if t.active {
		return false
	}

	t.active = true
	t.pointerX = pointerX
	t.pointerY = pointerY
	t.origin = origin
	return true
}

// Move computes the proposed position for the current pointer location:
// origin plus the pointer delta. Returns false when no drag is active.
func (t *DragTracker) Move(pointerX, pointerY int) (types.CardPosition, bool) {
	if !t.active {
		return types.CardPosition{}, false
	}

	dx := pointerX - t.pointerX
	dy := pointerY - t.pointerY

	return types.CardPosition{X: t.origin.X + dx, Y: t.origin.Y + dy}, true
}

// End completes the gesture. Returns false if no drag was active.
func (t *DragTracker) End() bool {
	if !t.active {
		return false
	}
	t.active = false
	return true
}

// Cancel aborts the gesture and returns the origin snapshot so the
// caller can restore the card to its pre-drag position.
func (t *DragTracker) Cancel() (types.CardPosition, bool) {
	if !t.active {
		return types.CardPosition{}, false
	}
	t.active = false
	return t.origin, true
}

// Active reports whether a drag gesture is in flight
func (t *DragTracker) Active() bool { return t.active }
