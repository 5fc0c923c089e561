package workspace

import (
	"testing"
	"time"

	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/shared/types"
)

func open(t *testing.T, cards *card.Manager, title string) *types.Card {
	t.Helper()
	c, err := cards.Open(types.OpenCardRequest{Type: types.CardChat, Title: title})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	// CreatedAt drives stack order; keep opens strictly ordered
	time.Sleep(time.Millisecond)
	return c
}

func TestSetBoundsValidation(t *testing.T) {
	m := NewManager(card.NewManager(), nil)

	if err := m.SetBounds(types.WorkspaceBounds{Width: 0, Height: 100}); err == nil {
		t.Error("zero width should be rejected")
	}
	if err := m.SetBounds(types.WorkspaceBounds{Width: 100, Height: -5}); err == nil {
		t.Error("negative height should be rejected")
	}

	if err := m.SetBounds(types.WorkspaceBounds{Width: 1000, Height: 800}); err != nil {
		t.Fatalf("SetBounds failed: %v", err)
	}
	if b := m.Bounds(); b.Width != 1000 || b.Height != 800 {
		t.Errorf("expected 1000x800, got %+v", b)
	}
}

func TestSetBoundsReclampsFloatingCards(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)
	m.SetBounds(types.WorkspaceBounds{Width: 2000, Height: 1500})

	c, _ := cards.Open(types.OpenCardRequest{
		Type:     types.CardChat,
		Position: &types.CardPosition{X: 1800, Y: 1400},
		Size:     &types.CardSize{Width: 400, Height: 300},
	})

	// Shrinking the workspace must pull the card back in reach
	m.SetBounds(types.WorkspaceBounds{Width: 1000, Height: 800})

	updated, _ := cards.Get(c.ID)
	if updated.Position.X > 1000 || updated.Position.Y > 800 {
		t.Errorf("card stranded outside shrunken workspace: %+v", updated.Position)
	}
}

func TestSetBoundsResnapsSnappedCards(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)
	m.SetBounds(types.WorkspaceBounds{Width: 1000, Height: 800})

	c, _ := cards.Open(types.OpenCardRequest{Type: types.CardChat})
	cards.Snap(c.ID, types.SnapLeft, m.Bounds())

	m.SetBounds(types.WorkspaceBounds{Width: 1600, Height: 1200})

	updated, _ := cards.Get(c.ID)
	if updated.Size.Width != 800 || updated.Size.Height != 1200 {
		t.Errorf("left-snapped card should track the new half, got %+v", updated.Size)
	}
	if updated.SnapZone != types.SnapLeft {
		t.Errorf("snap tag should survive re-measurement, got %s", updated.SnapZone)
	}
}

func TestSetBoundsRefitsMaximizedCard(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)
	m.SetBounds(types.WorkspaceBounds{Width: 1280, Height: 720})

	c := open(t, cards, "Max")
	cards.Maximize(c.ID, m.Bounds())

	m.SetBounds(types.WorkspaceBounds{Width: 1920, Height: 1080})

	updated, _ := cards.Get(c.ID)
	if updated.Size.Width != 1920 || updated.Size.Height != 1080 {
		t.Errorf("maximized card should fill the new bounds, got %+v", updated.Size)
	}
	if !updated.Maximized {
		t.Error("card should stay maximized through the re-measure")
	}
}

func TestGridLayoutTilesVisibleCards(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)
	m.SetBounds(types.WorkspaceBounds{Width: 1600, Height: 1000})

	c1 := open(t, cards, "A")
	c2 := open(t, cards, "B")
	c3 := open(t, cards, "C")
	cards.Minimize(c3.ID)

	if err := m.SetLayout(types.LayoutGrid); err != nil {
		t.Fatalf("SetLayout failed: %v", err)
	}

	u1, _ := cards.Get(c1.ID)
	u2, _ := cards.Get(c2.ID)
	if u1.Position == u2.Position {
		t.Error("tiled cards should occupy distinct slots")
	}

	// Minimized cards stay untouched
	u3, _ := cards.Get(c3.ID)
	if !u3.Minimized {
		t.Error("minimized card should stay minimized through tiling")
	}
}

func TestGridLayoutUnmaximizes(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)
	m.SetBounds(types.WorkspaceBounds{Width: 1600, Height: 1000})

	c1 := open(t, cards, "A")
	open(t, cards, "B")
	cards.Maximize(c1.ID, m.Bounds())

	if err := m.SetLayout(types.LayoutGrid); err != nil {
		t.Fatalf("SetLayout failed: %v", err)
	}

	u1, _ := cards.Get(c1.ID)
	if u1.Maximized {
		t.Error("tiling should drop the maximized flag")
	}
	if u1.Size.Width >= 1600 {
		t.Errorf("tiled card should occupy a slot, not the full workspace: %+v", u1.Size)
	}

	// The tile must accept gestures again
	if !cards.Move(c1.ID, types.CardPosition{X: 10, Y: 10}) {
		t.Error("tiled card should move after the layout change")
	}
}

func TestStackLayoutFillsWorkspace(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)
	m.SetBounds(types.WorkspaceBounds{Width: 390, Height: 844})

	c := open(t, cards, "Only")

	if err := m.SetLayout(types.LayoutStack); err != nil {
		t.Fatalf("SetLayout failed: %v", err)
	}

	updated, _ := cards.Get(c.ID)
	if updated.Position.X != 0 || updated.Position.Y != 0 {
		t.Errorf("stacked card should sit at origin, got %+v", updated.Position)
	}
	if updated.Size.Width != 390 || updated.Size.Height != 844 {
		t.Errorf("stacked card should fill bounds, got %+v", updated.Size)
	}
}

func TestSetLayoutRejectsUnknownMode(t *testing.T) {
	m := NewManager(card.NewManager(), nil)

	if err := m.SetLayout("cascade"); err == nil {
		t.Error("unknown layout mode should be rejected")
	}
}

func TestSwipeCyclesCards(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)

	c1 := open(t, cards, "First")
	c2 := open(t, cards, "Second")
	c3 := open(t, cards, "Third")

	m.SetLayout(types.LayoutStack)

	// Focus starts on the last-opened card
	next, err := m.Swipe(SwipeNext)
	if err != nil {
		t.Fatalf("Swipe failed: %v", err)
	}
	if next.ID != c1.ID {
		t.Errorf("swipe next from last card should wrap to first, got %s", next.Title)
	}

	next, _ = m.Swipe(SwipeNext)
	if next.ID != c2.ID {
		t.Errorf("expected second card, got %s", next.Title)
	}

	prev, _ := m.Swipe(SwipePrev)
	if prev.ID != c1.ID {
		t.Errorf("swipe prev should return to first card, got %s", prev.Title)
	}
	_ = c3
}

func TestSwipeRequiresStackLayout(t *testing.T) {
	cards := card.NewManager()
	m := NewManager(cards, nil)
	open(t, cards, "A")

	if _, err := m.Swipe(SwipeNext); err == nil {
		t.Error("swipe should fail outside stack layout")
	}
}

func TestSwipeEmptyDeck(t *testing.T) {
	m := NewManager(card.NewManager(), nil)
	m.SetLayout(types.LayoutStack)

	if _, err := m.Swipe(SwipeNext); err == nil {
		t.Error("swipe with no cards should fail")
	}
}
