package geometry

import (
	"math"

	"github.com/HobbyCoders/deck/internal/shared/types"
)

// GridGap is the pixel spacing between tiled cards
const GridGap = 8

// GridLayout tiles count cards into a near-square grid inside the
// workspace and returns one rect per slot, row-major. Column count is
// ceil(sqrt(count)); the last row absorbs the remainder. Slots never
// shrink below the card minimums even if that overflows the bounds.
func GridLayout(count int, bounds types.WorkspaceBounds) []Rect {
	if count <= 0 {
		return nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := int(math.Ceil(float64(count) / float64(cols)))

	cellW := (bounds.Width - GridGap*(cols+1)) / cols
	cellH := (bounds.Height - GridGap*(rows+1)) / rows
	if cellW < types.MinCardWidth {
		cellW = types.MinCardWidth
	}
	if cellH < types.MinCardHeight {
		cellH = types.MinCardHeight
	}

	rects := make([]Rect, 0, count)
	for i := 0; i < count; i++ {
		row := i / cols
		col := i % cols

		rects = append(rects, Rect{
			X:      GridGap + col*(cellW+GridGap),
			Y:      GridGap + row*(cellH+GridGap),
			Width:  cellW,
			Height: cellH,
		})
	}

	return rects
}

// StackLayout returns the single full-workspace rect used by the
// mobile one-card-at-a-time view
func StackLayout(bounds types.WorkspaceBounds) Rect {
	w := bounds.Width
	h := bounds.Height
	if w < types.MinCardWidth {
		w = types.MinCardWidth
	}
	if h < types.MinCardHeight {
		h = types.MinCardHeight
	}
	return Rect{X: 0, Y: 0, Width: w, Height: h}
}
