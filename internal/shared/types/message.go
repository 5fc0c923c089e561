package types

// WebSocket message types for the deck stream
const (
	MsgPointerDown   = "pointer_down"
	MsgPointerMove   = "pointer_move"
	MsgPointerUp     = "pointer_up"
	MsgPointerCancel = "pointer_cancel"
	MsgOpenCard      = "open_card"
	MsgCloseCard     = "close_card"
	MsgFocusCard     = "focus_card"
	MsgSetLayout     = "set_layout"
	MsgSwipe         = "swipe"
	MsgViewport      = "viewport"
	MsgPing          = "ping"
)

// GestureKind selects which tracker a pointer_down starts
type GestureKind string

const (
	GestureDrag   GestureKind = "drag"
	GestureResize GestureKind = "resize"
)

// ResizeEdge encodes which window edge or corner a resize grabs.
// Corner codes combine a vertical and a horizontal letter.
type ResizeEdge string

const (
	EdgeNorth     ResizeEdge = "n"
	EdgeSouth     ResizeEdge = "s"
	EdgeEast      ResizeEdge = "e"
	EdgeWest      ResizeEdge = "w"
	EdgeNorthEast ResizeEdge = "ne"
	EdgeNorthWest ResizeEdge = "nw"
	EdgeSouthEast ResizeEdge = "se"
	EdgeSouthWest ResizeEdge = "sw"
)

// WSMessage represents a WebSocket deck stream message
type WSMessage struct {
	Type    string                 `json:"type"`
	CardID  string                 `json:"card_id,omitempty"`
	Gesture GestureKind            `json:"gesture,omitempty"`
	Edge    ResizeEdge             `json:"edge,omitempty"`
	X       int                    `json:"x,omitempty"`
	Y       int                    `json:"y,omitempty"`
	Width   int                    `json:"width,omitempty"`
	Height  int                    `json:"height,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
