package geometry

import (
	"testing"

	"github.com/HobbyCoders/deck/internal/shared/types"
)

func TestClampInBoundsUnchanged(t *testing.T) {
	bounds := types.WorkspaceBounds{Width: 1000, Height: 800}
	size := types.CardSize{Width: 400, Height: 300}

	positions := []types.CardPosition{
		{X: 10, Y: 10},
		{X: 0, Y: 0},
		{X: 500, Y: 400},
		{X: 900 - 400, Y: 700},
	}

	for _, pos := range positions {
		got := Clamp(pos, size, bounds)
		if got != pos {
			t.Errorf("in-bounds position should be unchanged: %+v -> %+v", pos, got)
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	bounds := types.WorkspaceBounds{Width: 1000, Height: 800}
	size := types.CardSize{Width: 400, Height: 300}

	positions := []types.CardPosition{
		{X: -5000, Y: -5000},
		{X: 5000, Y: 5000},
		{X: 10, Y: 10},
		{X: -350, Y: 790},
		{X: 999, Y: -1},
	}

	for _, pos := range positions {
		once := Clamp(pos, size, bounds)
		twice := Clamp(once, size, bounds)
		if once != twice {
			t.Errorf("clamp should converge after one application: %+v -> %+v -> %+v", pos, once, twice)
		}
	}
}

func TestClampHorizontalLimits(t *testing.T) {
	bounds := types.WorkspaceBounds{Width: 1000, Height: 800}
	size := types.CardSize{Width: 400, Height: 300}

	// Far left: only MinVisible pixels may remain inside on the right
	got := Clamp(types.CardPosition{X: -9999, Y: 100}, size, bounds)
	if got.X != MinVisible-size.Width {
		t.Errorf("expected left limit %d, got %d", MinVisible-size.Width, got.X)
	}

	// Far right: left edge stops at workspace width minus MinVisible
	got = Clamp(types.CardPosition{X: 9999, Y: 100}, size, bounds)
	if got.X != bounds.Width-MinVisible {
		t.Errorf("expected right limit %d, got %d", bounds.Width-MinVisible, got.X)
	}
}

func TestClampVerticalLimits(t *testing.T) {
	bounds := types.WorkspaceBounds{Width: 1000, Height: 800}
	size := types.CardSize{Width: 400, Height: 300}

	// Header may never rise above the workspace top
	got := Clamp(types.CardPosition{X: 100, Y: -9999}, size, bounds)
	if got.Y != TopPadding {
		t.Errorf("expected top limit %d, got %d", TopPadding, got.Y)
	}

	// Header must stay reachable above the bottom padding
	got = Clamp(types.CardPosition{X: 100, Y: 9999}, size, bounds)
	want := bounds.Height - BottomPadding - HeaderHeight
	if got.Y != want {
		t.Errorf("expected bottom limit %d, got %d", want, got.Y)
	}
}

func TestClampDegenerateBoundsIdempotent(t *testing.T) {
	// Workspace smaller than the visibility minimums produces an
	// inverted range; the result must still be stable.
	bounds := types.WorkspaceBounds{Width: 50, Height: 30}
	size := types.CardSize{Width: 60, Height: 40}

	pos := types.CardPosition{X: 10, Y: 10}
	once := Clamp(pos, size, bounds)
	twice := Clamp(once, size, bounds)
	if once != twice {
		t.Errorf("degenerate bounds should still be idempotent: %+v vs %+v", once, twice)
	}
}
