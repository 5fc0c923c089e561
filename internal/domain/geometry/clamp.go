package geometry

import "github.com/HobbyCoders/deck/internal/shared/types"

// Clamp tuning. MinVisible is how much of a card must stay reachable
// horizontally; HeaderHeight is the grab strip that must stay reachable
// vertically.
const (
	MinVisible    = 100
	HeaderHeight  = 40
	TopPadding    = 0
	BottomPadding = 8
)

// Clamp adjusts a proposed position so the card stays grabbable:
//   - horizontally the card may slide mostly off either side, but at
//     least MinVisible pixels remain inside the workspace
//   - vertically the header may never rise above the workspace top and
//     must stay above the bottom padding
//
// Pure and total: degenerate bounds (workspace smaller than the
// minimums) produce an inverted range and resolve to its upper limit,
// which keeps the function idempotent without special-casing.
func Clamp(pos types.CardPosition, size types.CardSize, bounds types.WorkspaceBounds) types.CardPosition {
	minX := MinVisible - size.Width
	maxX := bounds.Width - MinVisible

	minY := TopPadding
	maxY := bounds.Height - BottomPadding - HeaderHeight

	x := pos.X
	if x < minX {
		x = minX
	}
	if x > maxX {
		x = maxX
	}

	y := pos.Y
	if y < minY {
		y = minY
	}
	if y > maxY {
		y = maxY
	}

	return types.CardPosition{X: x, Y: y}
}
