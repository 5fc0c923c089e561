package geometry

import "github.com/HobbyCoders/deck/internal/shared/types"

// ResizeTracker is the idle → resizing(edge) → idle state machine for
// one card. The active edge code determines which sides of the origin
// rect each pointer delta adjusts. Minimum dimensions are hard floors;
// no maximum is enforced here.
type ResizeTracker struct {
	active bool
	edge   types.ResizeEdge

	pointerX int
	pointerY int
	origin   Rect
}

// Start begins a resize gesture on the given edge or corner, capturing
// the pointer origin and the card's origin rect. Returns false if a
// gesture is already in flight.
func (t *ResizeTracker) Start(edge types.ResizeEdge, pointerX, pointerY int, origin Rect) bool {
	if t.active {
		return false
	}

	t.active = true
	t.edge = edge
	t.pointerX = pointerX
	t.pointerY = pointerY
	t.origin = origin
	return true
}

// Move computes the proposed rect for the current pointer location.
// Each edge in the active code applies independently, so corner codes
// compose two edge rules. Returns false when no resize is active.
func (t *ResizeTracker) Move(pointerX, pointerY int) (Rect, bool) {
	if !t.active {
		return Rect{}, false
	}

	dx := pointerX - t.pointerX
	dy := pointerY - t.pointerY

	return resizeRect(t.origin, t.edge, dx, dy), true
}

// End completes the gesture. Returns false if no resize was active.
func (t *ResizeTracker) End() bool {
	if !t.active {
		return false
	}
	t.active = false
	return true
}

// Cancel aborts the gesture and returns the origin rect so the caller
// can restore the card's pre-resize geometry.
func (t *ResizeTracker) Cancel() (Rect, bool) {
	if !t.active {
		return Rect{}, false
	}
	t.active = false
	return t.origin, true
}

// Active reports whether a resize gesture is in flight
func (t *ResizeTracker) Active() bool { return t.active }

// Edge returns the active edge code, valid only while Active
func (t *ResizeTracker) Edge() types.ResizeEdge { return t.edge }

// resizeRect applies one pointer delta to an origin rect for a given
// edge code. East and south grow freely and floor at the minimums.
// West and north move the origin by exactly the clamped delta, keeping
// the opposite edge fixed when the floor engages.
func resizeRect(origin Rect, edge types.ResizeEdge, dx, dy int) Rect {
	r := origin

	if hasEast(edge) {
		r.Width = origin.Width + dx
		if r.Width < types.MinCardWidth {
			r.Width = types.MinCardWidth
		}
	}

	if hasWest(edge) {
		d := dx
		if origin.Width-d < types.MinCardWidth {
			d = origin.Width - types.MinCardWidth
		}
		r.Width = origin.Width - d
		r.X = origin.X + d
	}

	if hasSouth(edge) {
		r.Height = origin.Height + dy
		if r.Height < types.MinCardHeight {
			r.Height = types.MinCardHeight
		}
	}

	if hasNorth(edge) {
		d := dy
		if origin.Height-d < types.MinCardHeight {
			d = origin.Height - types.MinCardHeight
		}
		r.Height = origin.Height - d
		r.Y = origin.Y + d
	}

	return r
}

func hasNorth(edge types.ResizeEdge) bool {
	return edge == types.EdgeNorth || edge == types.EdgeNorthEast || edge == types.EdgeNorthWest
}

func hasSouth(edge types.ResizeEdge) bool {
	return edge == types.EdgeSouth || edge == types.EdgeSouthEast || edge == types.EdgeSouthWest
}

func hasEast(edge types.ResizeEdge) bool {
	return edge == types.EdgeEast || edge == types.EdgeNorthEast || edge == types.EdgeSouthEast
}

func hasWest(edge types.ResizeEdge) bool {
	return edge == types.EdgeWest || edge == types.EdgeNorthWest || edge == types.EdgeSouthWest
}
