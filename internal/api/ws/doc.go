// Package ws provides the WebSocket deck stream.
//
// This package carries the high-frequency pointer gesture channel and
// fans card state updates out to every connected client, keeping
// multiple windows onto the same deck in sync.
//
// Message Types (Client → Server):
//   - pointer_down: Start a drag or resize gesture on a card
//   - pointer_move: Advance the active gesture
//   - pointer_up: Commit the gesture (drags may snap)
//   - pointer_cancel: Abort the gesture, restoring the origin geometry
//   - open_card / close_card / focus_card: Card lifecycle
//   - set_layout: Switch float/grid/stack layout
//   - swipe: Stack-mode navigation
//   - viewport: Report a new workspace container measurement
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - card_update: A card moved or resized, with optional snap preview
//   - card_opened / card_closed / card_focused: Lifecycle broadcasts
//   - layout_changed / bounds_changed: Workspace-wide rearrangements
//   - error: Request failed
//
// Example Usage:
//
//	hub := ws.NewHub()
//	handler := ws.NewHandler(cards, deck, gestures, hub, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
