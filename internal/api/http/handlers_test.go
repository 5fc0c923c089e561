package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/domain/registry"
	"github.com/HobbyCoders/deck/internal/domain/service"
	"github.com/HobbyCoders/deck/internal/domain/session"
	"github.com/HobbyCoders/deck/internal/domain/workspace"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fixture struct {
	router *gin.Engine
	cards  *card.Manager
	deck   *workspace.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cards := card.NewManager()
	deck := workspace.NewManager(cards, zap.NewNop())
	services := service.NewRegistry()
	templates := registry.NewManager(t.TempDir())
	sessions := session.NewManager(cards, deck, t.TempDir())

	h := NewHandlers(cards, deck, services, templates, sessions, nil)

	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/stats", h.Stats)
	router.POST("/cards", h.OpenCard)
	router.GET("/cards", h.ListCards)
	router.GET("/cards/:id", h.GetCard)
	router.POST("/cards/:id/focus", h.FocusCard)
	router.DELETE("/cards/:id", h.CloseCard)
	router.PATCH("/cards/:id/window", h.UpdateWindow)
	router.POST("/cards/:id/minimize", h.MinimizeCard)
	router.POST("/cards/:id/restore", h.RestoreCard)
	router.POST("/cards/:id/maximize", h.MaximizeCard)
	router.POST("/cards/:id/unmaximize", h.UnmaximizeCard)
	router.POST("/cards/:id/pin", h.PinCard)
	router.POST("/cards/:id/rename", h.RenameCard)
	router.POST("/cards/:id/snap", h.SnapCard)
	router.GET("/workspace", h.GetWorkspace)
	router.POST("/workspace/bounds", h.SetBounds)
	router.POST("/workspace/layout", h.SetLayout)
	router.POST("/workspace/swipe", h.Swipe)
	router.POST("/sessions", h.SaveSession)
	router.GET("/sessions", h.ListSessions)
	router.POST("/sessions/:id/restore", h.RestoreSession)
	router.POST("/registry/templates", h.SaveCardTemplate)
	router.GET("/registry/templates", h.ListTemplates)
	router.POST("/registry/templates/:id/open", h.OpenFromTemplate)

	return &fixture{router: router, cards: cards, deck: deck}
}

func (f *fixture) request(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Response is not JSON: %v", err)
		}
	}
	return w, resp
}

func TestRootAndHealth(t *testing.T) {
	f := newFixture(t)

	w, resp := f.request(t, "GET", "/", nil)
	if w.Code != http.StatusOK || resp["status"] != "online" {
		t.Errorf("Root failed: %d %v", w.Code, resp)
	}

	w, resp = f.request(t, "GET", "/health", nil)
	if w.Code != http.StatusOK || resp["status"] != "healthy" {
		t.Errorf("Health failed: %d %v", w.Code, resp)
	}
}

func TestOpenListCloseCard(t *testing.T) {
	f := newFixture(t)

	w, resp := f.request(t, "POST", "/cards", gin.H{"type": "chat", "title": "My Chat"})
	if w.Code != http.StatusOK {
		t.Fatalf("Open failed: %d %v", w.Code, resp)
	}
	opened := resp["card"].(map[string]interface{})
	cardID := opened["id"].(string)
	if opened["title"] != "My Chat" {
		t.Errorf("Expected title, got %v", opened["title"])
	}
	if opened["focused"] != true {
		t.Error("New card should be focused")
	}

	_, resp = f.request(t, "GET", "/cards", nil)
	if len(resp["cards"].([]interface{})) != 1 {
		t.Errorf("Expected 1 card, got %v", resp["cards"])
	}

	w, resp = f.request(t, "DELETE", "/cards/"+cardID, nil)
	if w.Code != http.StatusOK || resp["success"] != true {
		t.Fatalf("Close failed: %d %v", w.Code, resp)
	}

	w, _ = f.request(t, "GET", "/cards/"+cardID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after close, got %d", w.Code)
	}
}

func TestOpenCardRequiresType(t *testing.T) {
	f := newFixture(t)

	w, _ := f.request(t, "POST", "/cards", gin.H{"title": "No Type"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing type, got %d", w.Code)
	}
}

func TestWindowResizeFloors(t *testing.T) {
	f := newFixture(t)

	opened, _ := f.cards.Open(types.OpenCardRequest{
		Type: types.CardCanvas,
		Size: &types.CardSize{Width: 400, Height: 300},
	})

	// Growing works exactly
	_, resp := f.request(t, "PATCH", "/cards/"+opened.ID+"/window", gin.H{
		"size": gin.H{"width": 500, "height": 350},
	})
	c := resp["card"].(map[string]interface{})
	size := c["size"].(map[string]interface{})
	if size["width"].(float64) != 500 || size["height"].(float64) != 350 {
		t.Errorf("Expected 500x350, got %v", size)
	}

	// Shrinking below the minimums lands exactly on the floors
	_, resp = f.request(t, "PATCH", "/cards/"+opened.ID+"/window", gin.H{
		"size": gin.H{"width": 10, "height": 10},
	})
	c = resp["card"].(map[string]interface{})
	size = c["size"].(map[string]interface{})
	if size["width"].(float64) != 320 || size["height"].(float64) != 200 {
		t.Errorf("Expected floors 320x200, got %v", size)
	}
}

func TestSnapAndRelease(t *testing.T) {
	f := newFixture(t)

	opened, _ := f.cards.Open(types.OpenCardRequest{
		Type:     types.CardChat,
		Position: &types.CardPosition{X: 400, Y: 100},
		Size:     &types.CardSize{Width: 400, Height: 300},
	})

	_, resp := f.request(t, "POST", "/cards/"+opened.ID+"/snap", gin.H{"zone": "left"})
	c := resp["card"].(map[string]interface{})
	if c["snap_zone"] != "left" {
		t.Fatalf("Expected left snap, got %v", c["snap_zone"])
	}
	size := c["size"].(map[string]interface{})
	if size["width"].(float64) != 640 || size["height"].(float64) != 720 {
		t.Errorf("Left snap should be a half: got %v", size)
	}

	// Releasing restores the free-floating geometry
	_, resp = f.request(t, "POST", "/cards/"+opened.ID+"/snap", gin.H{"zone": "none"})
	c = resp["card"].(map[string]interface{})
	pos := c["position"].(map[string]interface{})
	if pos["x"].(float64) != 400 || pos["y"].(float64) != 100 {
		t.Errorf("Release should restore position, got %v", pos)
	}
}

func TestMaximizeRoundtrip(t *testing.T) {
	f := newFixture(t)

	opened, _ := f.cards.Open(types.OpenCardRequest{
		Type:     types.CardChat,
		Position: &types.CardPosition{X: 150, Y: 120},
	})

	f.request(t, "POST", "/cards/"+opened.ID+"/maximize", nil)
	maximized, _ := f.cards.Get(opened.ID)
	if !maximized.Maximized || maximized.Size.Width != 1280 {
		t.Fatalf("Maximize failed: %+v", maximized)
	}

	f.request(t, "POST", "/cards/"+opened.ID+"/unmaximize", nil)
	restored, _ := f.cards.Get(opened.ID)
	if restored.Maximized || restored.Position.X != 150 {
		t.Errorf("Unmaximize should restore geometry: %+v", restored)
	}
}

func TestSetBoundsRejectsDegenerate(t *testing.T) {
	f := newFixture(t)

	w, _ := f.request(t, "POST", "/workspace/bounds", gin.H{"width": -5, "height": 300})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative bounds, got %d", w.Code)
	}

	w, resp := f.request(t, "POST", "/workspace/bounds", gin.H{"width": 1920, "height": 1080})
	if w.Code != http.StatusOK {
		t.Fatalf("SetBounds failed: %v", resp)
	}
	if f.deck.Bounds().Width != 1920 {
		t.Errorf("Bounds not applied: %+v", f.deck.Bounds())
	}
}

func TestLayoutAndSwipe(t *testing.T) {
	f := newFixture(t)

	first, _ := f.cards.Open(types.OpenCardRequest{Type: types.CardChat, Title: "A"})
	second, _ := f.cards.Open(types.OpenCardRequest{Type: types.CardCanvas, Title: "B"})

	w, _ := f.request(t, "POST", "/workspace/layout", gin.H{"mode": "stack"})
	if w.Code != http.StatusOK {
		t.Fatalf("SetLayout failed: %d", w.Code)
	}

	// B is focused; swiping next wraps to A
	_, resp := f.request(t, "POST", "/workspace/swipe", gin.H{"direction": "next"})
	focused := resp["card"].(map[string]interface{})
	if focused["id"] != first.ID {
		t.Errorf("Expected swipe to focus %s, got %v", first.ID, focused["id"])
	}

	_, resp = f.request(t, "POST", "/workspace/swipe", gin.H{"direction": "next"})
	focused = resp["card"].(map[string]interface{})
	if focused["id"] != second.ID {
		t.Errorf("Expected wrap back to %s, got %v", second.ID, focused["id"])
	}

	w, _ = f.request(t, "POST", "/workspace/swipe", gin.H{"direction": "sideways"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Unknown direction should 400, got %d", w.Code)
	}
}

func TestSessionSaveRestore(t *testing.T) {
	f := newFixture(t)

	opened, _ := f.cards.Open(types.OpenCardRequest{
		Type:     types.CardTerminal,
		Title:    "Shell",
		Position: &types.CardPosition{X: 77, Y: 88},
	})

	_, resp := f.request(t, "POST", "/sessions", gin.H{"name": "work", "description": "test save"})
	meta := resp["session"].(map[string]interface{})
	sessionID := meta["id"].(string)

	// Mutate the deck, then restore
	f.cards.Close(opened.ID)
	f.cards.Open(types.OpenCardRequest{Type: types.CardChat})

	w, resp := f.request(t, "POST", fmt.Sprintf("/sessions/%s/restore", sessionID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Restore failed: %v", resp)
	}

	cards := f.cards.List()
	if len(cards) != 1 || cards[0].Title != "Shell" {
		t.Fatalf("Expected restored shell card, got %+v", cards)
	}
	if cards[0].Position.X != 77 || cards[0].Position.Y != 88 {
		t.Errorf("Geometry should survive restore: %+v", cards[0].Position)
	}
	if cards[0].ID == opened.ID {
		t.Error("Restored card should have a fresh ID")
	}
}

func TestTemplateSaveAndOpen(t *testing.T) {
	f := newFixture(t)

	opened, _ := f.cards.Open(types.OpenCardRequest{
		Type:    types.CardCanvas,
		Title:   "Sketchpad",
		Payload: map[string]interface{}{"brush": "fine"},
	})

	_, resp := f.request(t, "POST", "/registry/templates", gin.H{
		"card_id":     opened.ID,
		"description": "drawing surface",
		"category":    "creative",
	})
	templateID, _ := resp["template_id"].(string)
	if templateID == "" {
		t.Fatalf("Expected template_id, got %v", resp)
	}

	_, resp = f.request(t, "GET", "/registry/templates", nil)
	if len(resp["templates"].([]interface{})) != 1 {
		t.Fatalf("Expected 1 template, got %v", resp["templates"])
	}

	_, resp = f.request(t, "POST", "/registry/templates/"+templateID+"/open", nil)
	c := resp["card"].(map[string]interface{})
	if c["title"] != "Sketchpad" {
		t.Errorf("Template open should carry the name, got %v", c["title"])
	}
	payload := c["payload"].(map[string]interface{})
	if payload["brush"] != "fine" || payload["template_id"] != templateID {
		t.Errorf("Template payload should seed the card, got %v", payload)
	}
}

func TestRenameSanitizes(t *testing.T) {
	f := newFixture(t)

	opened, _ := f.cards.Open(types.OpenCardRequest{Type: types.CardChat})

	_, resp := f.request(t, "POST", "/cards/"+opened.ID+"/rename", gin.H{
		"title": "<script>alert(1)</script>Notes",
	})
	c := resp["card"].(map[string]interface{})
	if c["title"] != "Notes" {
		t.Errorf("Markup should be stripped, got %v", c["title"])
	}
}
