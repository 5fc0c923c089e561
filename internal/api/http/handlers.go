package http

import (
	"net/http"
	"time"

	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/domain/registry"
	"github.com/HobbyCoders/deck/internal/domain/service"
	"github.com/HobbyCoders/deck/internal/domain/session"
	"github.com/HobbyCoders/deck/internal/domain/workspace"
	"github.com/HobbyCoders/deck/internal/infrastructure/monitoring"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/HobbyCoders/deck/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// Notifier pushes deck changes made over REST out to stream clients
type Notifier interface {
	Broadcast(data interface{})
}

// Handlers contains all HTTP handlers
type Handlers struct {
	cards     *card.Manager
	deck      *workspace.Manager
	services  *service.Registry
	templates *registry.Manager
	sessions  *session.Manager
	metrics   *monitoring.Metrics

	notifier    Notifier
	onCardClose func(cardID string)
}

// NewHandlers creates a new handler set
func NewHandlers(
	cards *card.Manager,
	deck *workspace.Manager,
	services *service.Registry,
	templates *registry.Manager,
	sessions *session.Manager,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		cards:     cards,
		deck:      deck,
		services:  services,
		templates: templates,
		sessions:  sessions,
		metrics:   metrics,
	}
}

// SetNotifier wires the stream hub so REST mutations reach ws clients
func (h *Handlers) SetNotifier(n Notifier) {
	h.notifier = n
}

// OnCardClose registers a cleanup hook invoked after a card closes
func (h *Handlers) OnCardClose(fn func(cardID string)) {
	h.onCardClose = fn
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Deck Service (Go)",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"deck":     h.cards.Stats(),
		"services": h.services.Stats(),
		"sessions": h.sessions.Stats(),
		"workspace": gin.H{
			"bounds": h.deck.Bounds(),
			"layout": h.deck.Layout(),
		},
	})
}

// Stats reports aggregate backend statistics
func (h *Handlers) Stats(c *gin.Context) {
	resp := gin.H{
		"deck":      h.cards.Stats(),
		"sessions":  h.sessions.Stats(),
		"templates": h.templates.Stats(),
		"services":  h.services.Stats(),
	}
	if h.metrics != nil {
		snapshot := h.metrics.GetSnapshot()
		resp["requests"] = gin.H{
			"total":  snapshot.TotalRequests,
			"errors": snapshot.TotalErrors,
		}
		resp["connections"] = snapshot.Connections
		resp["uptime_seconds"] = h.metrics.UptimeSeconds()
	}
	c.JSON(http.StatusOK, resp)
}

// OpenCard spawns a new card
func (h *Handlers) OpenCard(c *gin.Context) {
	var req types.OpenCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParentID != nil {
		if err := utils.ValidateID(*req.ParentID, "parent_id", false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, ok := h.cards.Get(*req.ParentID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "parent card not found"})
			return
		}
	}

	opened, err := h.cards.Open(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notify(gin.H{"type": "card_opened", "card": opened, "timestamp": time.Now().Unix()})

	c.JSON(http.StatusOK, gin.H{"card": opened})
}

// ListCards lists all cards in paint order
func (h *Handlers) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cards": h.cards.List(),
		"stats": h.cards.Stats(),
	})
}

// GetCard gets details of a specific card
func (h *Handlers) GetCard(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	found, ok := h.cards.Get(cardID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	c.JSON(http.StatusOK, found)
}

// FocusCard brings a card to the top of the stacking order
func (h *Handlers) FocusCard(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.cards.Focus(cardID)
	if success {
		focused, _ := h.cards.Get(cardID)
		h.notify(gin.H{"type": "card_focused", "card": focused, "timestamp": time.Now().Unix()})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"card_id": cardID,
	})
}

// CloseCard closes and destroys a card
func (h *Handlers) CloseCard(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.cards.Close(cardID)
	if success {
		if h.onCardClose != nil {
			h.onCardClose(cardID)
		}
		h.notify(gin.H{"type": "card_closed", "card_id": cardID, "timestamp": time.Now().Unix()})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"card_id": cardID,
	})
}

// UpdateWindow applies an absolute geometry update to a card
func (h *Handlers) UpdateWindow(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.WindowUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, ok := h.cards.Get(cardID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	success := true
	switch {
	case req.Size != nil:
		pos := target.Position
		if req.Position != nil {
			pos = *req.Position
		}
		success = h.cards.Resize(cardID, pos, *req.Size)
	case req.Position != nil:
		success = h.cards.Move(cardID, *req.Position)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "position or size required"})
		return
	}

	updated, _ := h.cards.Get(cardID)
	if success {
		h.notify(gin.H{"type": "card_update", "card": updated, "timestamp": time.Now().Unix()})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"card":    updated,
	})
}

// MinimizeCard hides a card from the workspace
func (h *Handlers) MinimizeCard(c *gin.Context) {
	h.cardFlagOp(c, h.cards.Minimize, "card_update")
}

// RestoreCard brings a minimized card back
func (h *Handlers) RestoreCard(c *gin.Context) {
	h.cardFlagOp(c, h.cards.Restore, "card_update")
}

// MaximizeCard expands a card to fill the workspace
func (h *Handlers) MaximizeCard(c *gin.Context) {
	h.cardFlagOp(c, func(cardID string) bool {
		return h.cards.Maximize(cardID, h.deck.Bounds())
	}, "card_update")
}

// UnmaximizeCard restores a maximized card to its prior geometry
func (h *Handlers) UnmaximizeCard(c *gin.Context) {
	h.cardFlagOp(c, h.cards.Unmaximize, "card_update")
}

// PinCard toggles a card's pinned flag
func (h *Handlers) PinCard(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pinned, ok := h.cards.TogglePin(cardID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	updated, _ := h.cards.Get(cardID)
	h.notify(gin.H{"type": "card_update", "card": updated, "timestamp": time.Now().Unix()})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"card_id": cardID,
		"pinned":  pinned,
	})
}

// RenameCard updates a card's title
func (h *Handlers) RenameCard(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cards.Rename(cardID, req.Title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, _ := h.cards.Get(cardID)
	h.notify(gin.H{"type": "card_update", "card": updated, "timestamp": time.Now().Unix()})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"card":    updated,
	})
}

// SnapCard docks a card into a zone, or releases it with zone "none"
func (h *Handlers) SnapCard(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req types.SnapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.cards.Snap(cardID, req.Zone, h.deck.Bounds()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "snap failed"})
		return
	}

	updated, _ := h.cards.Get(cardID)
	h.notify(gin.H{"type": "card_update", "card": updated, "timestamp": time.Now().Unix()})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"card":    updated,
	})
}

// UpdateCardPayload replaces a card's opaque per-type payload
func (h *Handlers) UpdateCardPayload(c *gin.Context) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Payload map[string]interface{} `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cards.UpdatePayload(cardID, req.Payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"card_id": cardID,
	})
}

// GetWorkspace reports the current bounds and layout mode
func (h *Handlers) GetWorkspace(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bounds": h.deck.Bounds(),
		"layout": h.deck.Layout(),
	})
}

// SetBounds records a new workspace container measurement
func (h *Handlers) SetBounds(c *gin.Context) {
	var req types.BoundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bounds := types.WorkspaceBounds{Width: req.Width, Height: req.Height}
	if err := h.deck.SetBounds(bounds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notify(gin.H{
		"type":      "bounds_changed",
		"width":     bounds.Width,
		"height":    bounds.Height,
		"cards":     h.cards.List(),
		"timestamp": time.Now().Unix(),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bounds":  bounds,
	})
}

// SetLayout switches the workspace layout mode
func (h *Handlers) SetLayout(c *gin.Context) {
	var req types.LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.deck.SetLayout(req.Mode); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notify(gin.H{
		"type":      "layout_changed",
		"mode":      req.Mode,
		"cards":     h.cards.List(),
		"timestamp": time.Now().Unix(),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"layout":  req.Mode,
	})
}

// Swipe navigates stack-mode focus to the adjacent card
func (h *Handlers) Swipe(c *gin.Context) {
	var req struct {
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	focused, err := h.deck.Swipe(workspace.SwipeDirection(req.Direction))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notify(gin.H{"type": "card_focused", "card": focused, "timestamp": time.Now().Unix()})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"card":    focused,
	})
}

// cardFlagOp runs a boolean card operation addressed by path param
func (h *Handlers) cardFlagOp(c *gin.Context, op func(cardID string) bool, event string) {
	cardID := c.Param("id")

	if err := utils.ValidateID(cardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := op(cardID)
	if success {
		updated, _ := h.cards.Get(cardID)
		h.notify(gin.H{"type": event, "card": updated, "timestamp": time.Now().Unix()})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"card_id": cardID,
	})
}

// notify fans a deck change out to stream clients, if a hub is wired
func (h *Handlers) notify(data interface{}) {
	if h.notifier != nil {
		h.notifier.Broadcast(data)
	}
}
