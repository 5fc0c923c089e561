package geometry

import (
	"testing"

	"github.com/HobbyCoders/deck/internal/shared/types"
)

func TestResizeSouthEastGrowAndFloor(t *testing.T) {
	// Card at (10,10) size 400x300, "se" handle
	origin := Rect{X: 10, Y: 10, Width: 400, Height: 300}

	var tracker ResizeTracker
	if !tracker.Start(types.EdgeSouthEast, 0, 0, origin) {
		t.Fatal("Start should succeed from idle")
	}

	// Grow by (+100,+50): size (500,350), position unchanged
	r, ok := tracker.Move(100, 50)
	if !ok {
		t.Fatal("Move should report active gesture")
	}
	if r.Width != 500 || r.Height != 350 {
		t.Errorf("expected size (500,350), got (%d,%d)", r.Width, r.Height)
	}
	if r.X != 10 || r.Y != 10 {
		t.Errorf("position should be unchanged, got (%d,%d)", r.X, r.Y)
	}

	// Shrink by (-200,-200): floors at (320,200)
	r, _ = tracker.Move(-200, -200)
	if r.Width != types.MinCardWidth || r.Height != types.MinCardHeight {
		t.Errorf("expected floor (%d,%d), got (%d,%d)",
			types.MinCardWidth, types.MinCardHeight, r.Width, r.Height)
	}
	if r.X != 10 || r.Y != 10 {
		t.Errorf("southeast resize should never move origin, got (%d,%d)", r.X, r.Y)
	}

	tracker.End()
}

func TestResizeFloorInvariantAllEdges(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 400, Height: 300}
	edges := []types.ResizeEdge{
		types.EdgeNorth, types.EdgeSouth, types.EdgeEast, types.EdgeWest,
		types.EdgeNorthEast, types.EdgeNorthWest, types.EdgeSouthEast, types.EdgeSouthWest,
	}
	deltas := [][2]int{
		{-1000, -1000}, {1000, 1000}, {-80, 0}, {0, -100},
		{80, -1000}, {-1000, 100}, {0, 0},
	}

	for _, edge := range edges {
		var tracker ResizeTracker
		tracker.Start(edge, 0, 0, origin)

		for _, d := range deltas {
			r, _ := tracker.Move(d[0], d[1])
			if r.Width < types.MinCardWidth {
				t.Errorf("edge %s delta %v: width %d below floor", edge, d, r.Width)
			}
			if r.Height < types.MinCardHeight {
				t.Errorf("edge %s delta %v: height %d below floor", edge, d, r.Height)
			}
		}

		tracker.End()
	}
}

func TestResizeWestPositionWidthCoupling(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	var tracker ResizeTracker
	tracker.Start(types.EdgeWest, 0, 0, origin)

	// Dragging right past the floor: the applied shift is exactly
	// originalWidth - 320, keeping the right edge fixed.
	r, _ := tracker.Move(300, 0)
	wantShift := origin.Width - types.MinCardWidth
	if r.X != origin.X+wantShift {
		t.Errorf("expected x=%d (shift %d), got x=%d", origin.X+wantShift, wantShift, r.X)
	}
	if r.Width != types.MinCardWidth {
		t.Errorf("expected width at floor %d, got %d", types.MinCardWidth, r.Width)
	}
	if r.Right() != origin.Right() {
		t.Errorf("right edge must stay fixed: %d vs %d", r.Right(), origin.Right())
	}

	// Dragging left grows width and moves x by the raw delta
	r, _ = tracker.Move(-50, 0)
	if r.X != 50 || r.Width != 450 {
		t.Errorf("expected x=50 width=450, got x=%d width=%d", r.X, r.Width)
	}
	if r.Right() != origin.Right() {
		t.Errorf("right edge must stay fixed: %d vs %d", r.Right(), origin.Right())
	}

	tracker.End()
}

func TestResizeNorthMirrorsWest(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	var tracker ResizeTracker
	tracker.Start(types.EdgeNorth, 0, 0, origin)

	// Past the floor: shift equals originalHeight - 200
	r, _ := tracker.Move(0, 500)
	wantShift := origin.Height - types.MinCardHeight
	if r.Y != origin.Y+wantShift {
		t.Errorf("expected y=%d, got y=%d", origin.Y+wantShift, r.Y)
	}
	if r.Height != types.MinCardHeight {
		t.Errorf("expected height at floor %d, got %d", types.MinCardHeight, r.Height)
	}
	if r.Bottom() != origin.Bottom() {
		t.Errorf("bottom edge must stay fixed: %d vs %d", r.Bottom(), origin.Bottom())
	}

	tracker.End()
}

func TestResizeCornerCombinesEdges(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	var tracker ResizeTracker
	tracker.Start(types.EdgeNorthWest, 0, 0, origin)

	r, _ := tracker.Move(50, 40)
	if r.X != 150 || r.Width != 350 {
		t.Errorf("west rule: expected x=150 width=350, got x=%d width=%d", r.X, r.Width)
	}
	if r.Y != 140 || r.Height != 260 {
		t.Errorf("north rule: expected y=140 height=260, got y=%d height=%d", r.Y, r.Height)
	}

	tracker.End()
}

func TestResizeCancelRestoresOrigin(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	var tracker ResizeTracker
	tracker.Start(types.EdgeEast, 0, 0, origin)
	tracker.Move(200, 0)

	restored, ok := tracker.Cancel()
	if !ok {
		t.Fatal("Cancel should succeed while resizing")
	}
	if restored != origin {
		t.Errorf("Cancel should return origin rect %+v, got %+v", origin, restored)
	}
	if tracker.Active() {
		t.Error("tracker should be idle after Cancel")
	}
}

func TestResizeSecondStartIgnored(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 400, Height: 300}

	var tracker ResizeTracker
	tracker.Start(types.EdgeEast, 0, 0, origin)

	if tracker.Start(types.EdgeWest, 0, 0, Rect{}) {
		t.Error("second Start should be ignored while resizing")
	}
	if tracker.Edge() != types.EdgeEast {
		t.Errorf("edge should remain from first Start, got %s", tracker.Edge())
	}
}
