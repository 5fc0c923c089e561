package gesture

import (
	"sync"
	"testing"

	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/shared/types"
)

type fixedBounds struct {
	b types.WorkspaceBounds
}

func (f fixedBounds) Bounds() types.WorkspaceBounds { return f.b }

func setup(t *testing.T) (*Controller, *card.Manager, *types.Card) {
	t.Helper()

	cards := card.NewManager()
	c, err := cards.Open(types.OpenCardRequest{
		Type:     types.CardChat,
		Position: &types.CardPosition{X: 10, Y: 10},
		Size:     &types.CardSize{Width: 400, Height: 300},
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ctrl := NewController(cards, fixedBounds{types.WorkspaceBounds{Width: 1000, Height: 800}}, nil)
	return ctrl, cards, c
}

func TestDragGesture(t *testing.T) {
	ctrl, _, c := setup(t)

	// Card at (10,10), drag by (+50,+20)
	if err := ctrl.PointerDown(c.ID, types.GestureDrag, "", 200, 100); err != nil {
		t.Fatalf("PointerDown failed: %v", err)
	}

	update, err := ctrl.PointerMove(c.ID, 250, 120)
	if err != nil {
		t.Fatalf("PointerMove failed: %v", err)
	}
	if update.Card.Position.X != 60 || update.Card.Position.Y != 30 {
		t.Errorf("expected (60,30), got %+v", update.Card.Position)
	}
	if update.Card.Size.Width != 400 || update.Card.Size.Height != 300 {
		t.Errorf("drag should not change size, got %+v", update.Card.Size)
	}
	if update.Preview != nil {
		t.Errorf("centered card should not preview a snap, got %+v", update.Preview)
	}

	final, err := ctrl.PointerUp(c.ID)
	if err != nil {
		t.Fatalf("PointerUp failed: %v", err)
	}
	if final.Card.SnapZone != types.SnapNone {
		t.Errorf("drop far from edges should not snap, got %s", final.Card.SnapZone)
	}
	if ctrl.Active(c.ID) {
		t.Error("session should be released after PointerUp")
	}
}

func TestResizeGesture(t *testing.T) {
	ctrl, _, c := setup(t)

	if err := ctrl.PointerDown(c.ID, types.GestureResize, types.EdgeSouthEast, 0, 0); err != nil {
		t.Fatalf("PointerDown failed: %v", err)
	}

	// Grow by (+100,+50)
	update, err := ctrl.PointerMove(c.ID, 100, 50)
	if err != nil {
		t.Fatalf("PointerMove failed: %v", err)
	}
	if update.Card.Size.Width != 500 || update.Card.Size.Height != 350 {
		t.Errorf("expected size (500,350), got %+v", update.Card.Size)
	}
	if update.Card.Position.X != 10 || update.Card.Position.Y != 10 {
		t.Errorf("southeast resize should not move card, got %+v", update.Card.Position)
	}

	// Shrink by (-200,-200) from origin: floors at (320,200)
	update, _ = ctrl.PointerMove(c.ID, -200, -200)
	if update.Card.Size.Width != types.MinCardWidth || update.Card.Size.Height != types.MinCardHeight {
		t.Errorf("expected floors, got %+v", update.Card.Size)
	}

	if _, err := ctrl.PointerUp(c.ID); err != nil {
		t.Fatalf("PointerUp failed: %v", err)
	}
}

func TestDragSnapCommitOnRelease(t *testing.T) {
	ctrl, _, c := setup(t)

	ctrl.PointerDown(c.ID, types.GestureDrag, "", 0, 0)

	// Drag toward the left edge: preview appears
	update, err := ctrl.PointerMove(c.ID, -5, 240)
	if err != nil {
		t.Fatalf("PointerMove failed: %v", err)
	}
	if update.Preview == nil || update.Preview.Zone != types.SnapLeft {
		t.Fatalf("expected left snap preview, got %+v", update.Preview)
	}
	if update.Preview.Width != 500 || update.Preview.Height != 800 {
		t.Errorf("left preview should be the left half, got %+v", update.Preview)
	}

	// Releasing commits the snap
	final, err := ctrl.PointerUp(c.ID)
	if err != nil {
		t.Fatalf("PointerUp failed: %v", err)
	}
	if final.Card.SnapZone != types.SnapLeft {
		t.Errorf("expected committed left snap, got %s", final.Card.SnapZone)
	}
	if final.Card.Position.X != 0 || final.Card.Size.Width != 500 {
		t.Errorf("snapped card should fill the left half, got %+v %+v", final.Card.Position, final.Card.Size)
	}
}

func TestDragClampsToBounds(t *testing.T) {
	ctrl, _, c := setup(t)

	ctrl.PointerDown(c.ID, types.GestureDrag, "", 0, 0)

	update, _ := ctrl.PointerMove(c.ID, 0, -9999)
	if update.Card.Position.Y != 0 {
		t.Errorf("header should never rise above the workspace, got y=%d", update.Card.Position.Y)
	}
}

func TestSecondPointerDownIgnored(t *testing.T) {
	ctrl, _, c := setup(t)

	ctrl.PointerDown(c.ID, types.GestureDrag, "", 0, 0)

	// Second pointer should not restart the gesture
	if err := ctrl.PointerDown(c.ID, types.GestureDrag, "", 500, 500); err != nil {
		t.Fatalf("second PointerDown should be ignored, not fail: %v", err)
	}

	update, _ := ctrl.PointerMove(c.ID, 10, 10)
	if update.Card.Position.X != 20 || update.Card.Position.Y != 20 {
		t.Errorf("origin should come from the first pointer, got %+v", update.Card.Position)
	}
}

func TestCancelRestoresOrigin(t *testing.T) {
	ctrl, _, c := setup(t)

	ctrl.PointerDown(c.ID, types.GestureDrag, "", 0, 0)
	ctrl.PointerMove(c.ID, 300, 300)

	update, err := ctrl.PointerCancel(c.ID)
	if err != nil {
		t.Fatalf("PointerCancel failed: %v", err)
	}
	if update.Card.Position.X != 10 || update.Card.Position.Y != 10 {
		t.Errorf("cancel should restore origin (10,10), got %+v", update.Card.Position)
	}
	if ctrl.Active(c.ID) {
		t.Error("session should be released after cancel")
	}
}

func TestMaximizedCardRejectsGestures(t *testing.T) {
	ctrl, cards, c := setup(t)

	cards.Maximize(c.ID, types.WorkspaceBounds{Width: 1000, Height: 800})

	if err := ctrl.PointerDown(c.ID, types.GestureDrag, "", 0, 0); err == nil {
		t.Error("maximized card should reject pointer-down")
	}
}

func TestIndependentGesturesPerCard(t *testing.T) {
	ctrl, cards, c1 := setup(t)

	c2, _ := cards.Open(types.OpenCardRequest{
		Type:     types.CardAgent,
		Position: &types.CardPosition{X: 600, Y: 400},
		Size:     &types.CardSize{Width: 350, Height: 250},
	})

	ctrl.PointerDown(c1.ID, types.GestureDrag, "", 0, 0)
	ctrl.PointerDown(c2.ID, types.GestureDrag, "", 0, 0)

	u1, _ := ctrl.PointerMove(c1.ID, 30, 30)
	u2, _ := ctrl.PointerMove(c2.ID, -40, -40)

	if u1.Card.Position.X != 40 || u1.Card.Position.Y != 40 {
		t.Errorf("card1 expected (40,40), got %+v", u1.Card.Position)
	}
	if u2.Card.Position.X != 560 || u2.Card.Position.Y != 360 {
		t.Errorf("card2 expected (560,360), got %+v", u2.Card.Position)
	}
}

func TestConcurrentPointerEvents(t *testing.T) {
	ctrl, _, c := setup(t)

	// Moves racing the release on the same card must never corrupt a
	// tracker; the loser just sees the session gone.
	for i := 0; i < 50; i++ {
		if err := ctrl.PointerDown(c.ID, types.GestureDrag, "", 0, 0); err != nil {
			t.Fatalf("PointerDown failed: %v", err)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				ctrl.PointerMove(c.ID, j, j)
			}
		}()
		go func() {
			defer wg.Done()
			ctrl.PointerUp(c.ID)
		}()
		wg.Wait()

		if ctrl.Active(c.ID) {
			t.Fatal("session should be released after PointerUp")
		}
	}
}

func TestPointerMoveWithoutSession(t *testing.T) {
	ctrl, _, c := setup(t)

	if _, err := ctrl.PointerMove(c.ID, 10, 10); err == nil {
		t.Error("move without a session should fail")
	}
	if _, err := ctrl.PointerUp(c.ID); err == nil {
		t.Error("up without a session should fail")
	}
}

func TestInvalidResizeEdge(t *testing.T) {
	ctrl, _, c := setup(t)

	if err := ctrl.PointerDown(c.ID, types.GestureResize, "diagonal", 0, 0); err == nil {
		t.Error("invalid edge code should be rejected")
	}
}
