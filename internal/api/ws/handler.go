package ws

import (
	"net/http"
	"time"

	"github.com/HobbyCoders/deck/internal/domain/card"
	"github.com/HobbyCoders/deck/internal/domain/gesture"
	"github.com/HobbyCoders/deck/internal/domain/workspace"
	"github.com/HobbyCoders/deck/internal/infrastructure/monitoring"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler manages WebSocket connections carrying the deck stream:
// pointer gestures in, card state updates out. Every state change is
// fanned out through the hub so all clients stay in sync.
type Handler struct {
	cards    *card.Manager
	deck     *workspace.Manager
	gestures *gesture.Controller
	hub      *Hub
	metrics  *monitoring.Metrics
	logger   *zap.Logger

	// onCardClose runs cleanup hooks (terminal sessions etc.) when a
	// card closes over the stream
	onCardClose func(cardID string)
}

// NewHandler creates a new WebSocket handler
func NewHandler(cards *card.Manager, deck *workspace.Manager, gestures *gesture.Controller, hub *Hub, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cards:    cards,
		deck:     deck,
		gestures: gestures,
		hub:      hub,
		metrics:  metrics,
		logger:   logger,
	}
}

// OnCardClose registers a cleanup hook invoked after a card closes
func (h *Handler) OnCardClose(fn func(cardID string)) {
	h.onCardClose = fn
}

// HandleConnection handles WebSocket upgrade and the message loop
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn}
	h.hub.register(cl)
	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	defer func() {
		h.hub.unregister(cl)
		if h.metrics != nil {
			h.metrics.DecWSConnections()
		}
		conn.Close()
	}()

	h.send(cl, map[string]interface{}{
		"type":    "system",
		"message": "Connected to deck stream",
	})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			break
		}

		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case types.MsgPointerDown:
			h.handlePointerDown(cl, msg)
		case types.MsgPointerMove:
			h.handlePointerMove(cl, msg)
		case types.MsgPointerUp:
			h.handlePointerUp(cl, msg)
		case types.MsgPointerCancel:
			h.handlePointerCancel(cl, msg)
		case types.MsgOpenCard:
			h.handleOpenCard(cl, msg)
		case types.MsgCloseCard:
			h.handleCloseCard(cl, msg)
		case types.MsgFocusCard:
			h.handleFocusCard(cl, msg)
		case types.MsgSetLayout:
			h.handleSetLayout(cl, msg)
		case types.MsgSwipe:
			h.handleSwipe(cl, msg)
		case types.MsgViewport:
			h.handleViewport(cl, msg)
		case types.MsgPing:
			h.send(cl, map[string]interface{}{"type": "pong"})
		default:
			h.sendError(cl, "unknown message type")
		}
	}
}

func (h *Handler) handlePointerDown(cl *client, msg types.WSMessage) {
	if err := h.gestures.PointerDown(msg.CardID, msg.Gesture, msg.Edge, msg.X, msg.Y); err != nil {
		h.sendError(cl, err.Error())
		return
	}
	if h.metrics != nil {
		h.metrics.RecordGesture(string(msg.Gesture), "down")
	}
}

func (h *Handler) handlePointerMove(cl *client, msg types.WSMessage) {
	update, err := h.gestures.PointerMove(msg.CardID, msg.X, msg.Y)
	if err != nil {
		h.sendError(cl, err.Error())
		return
	}
	h.broadcastUpdate(update)
}

func (h *Handler) handlePointerUp(cl *client, msg types.WSMessage) {
	update, err := h.gestures.PointerUp(msg.CardID)
	if err != nil {
		h.sendError(cl, err.Error())
		return
	}
	h.broadcastUpdate(update)
}

func (h *Handler) handlePointerCancel(cl *client, msg types.WSMessage) {
	update, err := h.gestures.PointerCancel(msg.CardID)
	if err != nil {
		h.sendError(cl, err.Error())
		return
	}
	h.broadcastUpdate(update)
}

func (h *Handler) handleOpenCard(cl *client, msg types.WSMessage) {
	cardType, _ := msg.Payload["type"].(string)
	if cardType == "" {
		h.sendError(cl, "card type required")
		return
	}
	title, _ := msg.Payload["title"].(string)

	req := types.OpenCardRequest{
		Type:  types.CardType(cardType),
		Title: title,
	}
	if payload, ok := msg.Payload["payload"].(map[string]interface{}); ok {
		req.Payload = payload
	}

	opened, err := h.cards.Open(req)
	if err != nil {
		h.sendError(cl, err.Error())
		return
	}

	h.broadcast("card_opened", map[string]interface{}{
		"type":      "card_opened",
		"card":      opened,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) handleCloseCard(cl *client, msg types.WSMessage) {
	if !h.cards.Close(msg.CardID) {
		h.sendError(cl, "card not found: "+msg.CardID)
		return
	}
	if h.onCardClose != nil {
		h.onCardClose(msg.CardID)
	}

	h.broadcast("card_closed", map[string]interface{}{
		"type":      "card_closed",
		"card_id":   msg.CardID,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) handleFocusCard(cl *client, msg types.WSMessage) {
	if !h.cards.Focus(msg.CardID) {
		h.sendError(cl, "card not found: "+msg.CardID)
		return
	}

	focused, _ := h.cards.Get(msg.CardID)
	h.broadcast("card_focused", map[string]interface{}{
		"type":      "card_focused",
		"card":      focused,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) handleSetLayout(cl *client, msg types.WSMessage) {
	mode, _ := msg.Payload["mode"].(string)
	if err := h.deck.SetLayout(types.LayoutMode(mode)); err != nil {
		h.sendError(cl, err.Error())
		return
	}

	h.broadcast("layout_changed", map[string]interface{}{
		"type":      "layout_changed",
		"mode":      mode,
		"cards":     h.cards.List(),
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) handleSwipe(cl *client, msg types.WSMessage) {
	direction, _ := msg.Payload["direction"].(string)
	focused, err := h.deck.Swipe(workspace.SwipeDirection(direction))
	if err != nil {
		h.sendError(cl, err.Error())
		return
	}

	h.broadcast("card_focused", map[string]interface{}{
		"type":      "card_focused",
		"card":      focused,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) handleViewport(cl *client, msg types.WSMessage) {
	bounds := types.WorkspaceBounds{Width: msg.Width, Height: msg.Height}
	if err := h.deck.SetBounds(bounds); err != nil {
		h.sendError(cl, err.Error())
		return
	}

	// Re-fitting may have moved any card, so ship the full list
	h.broadcast("bounds_changed", map[string]interface{}{
		"type":      "bounds_changed",
		"width":     bounds.Width,
		"height":    bounds.Height,
		"cards":     h.cards.List(),
		"timestamp": time.Now().Unix(),
	})
}

// broadcastUpdate fans a gesture outcome out to every client
func (h *Handler) broadcastUpdate(update *gesture.Update) {
	data := map[string]interface{}{
		"type":      "card_update",
		"card":      update.Card,
		"timestamp": time.Now().Unix(),
	}
	if update.Preview != nil {
		data["preview"] = update.Preview
	}
	h.broadcast("card_update", data)
}

func (h *Handler) broadcast(msgType string, data interface{}) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msgType)
	}
	h.hub.Broadcast(data)
}

func (h *Handler) send(cl *client, data interface{}) error {
	return cl.write(data)
}

func (h *Handler) sendError(cl *client, msg string) error {
	return h.send(cl, map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
