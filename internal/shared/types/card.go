package types

import "time"

// CardType tags which renderer and backing services a card uses
type CardType string

const (
	CardChat        CardType = "chat"
	CardAgent       CardType = "agent"
	CardCanvas      CardType = "canvas"
	CardTerminal    CardType = "terminal"
	CardSettings    CardType = "settings"
	CardProfile     CardType = "profile"
	CardSubagent    CardType = "subagent"
	CardProject     CardType = "project"
	CardFileBrowser CardType = "file_browser"
	CardModelStudio CardType = "model_studio"
)

// SnapZone classifies a card's docked position within the workspace
type SnapZone string

const (
	SnapNone        SnapZone = "none"
	SnapLeft        SnapZone = "left"
	SnapRight       SnapZone = "right"
	SnapTop         SnapZone = "top"
	SnapBottom      SnapZone = "bottom"
	SnapTopLeft     SnapZone = "topleft"
	SnapTopRight    SnapZone = "topright"
	SnapBottomLeft  SnapZone = "bottomleft"
	SnapBottomRight SnapZone = "bottomright"
)

// Minimum card dimensions, enforced as hard floors by all resize paths
const (
	MinCardWidth  = 320
	MinCardHeight = 200
)

// CardPosition represents a card's position within the workspace
type CardPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CardSize represents a card's dimensions
type CardSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CardRestore remembers pre-maximize/pre-snap geometry so it can be undone
type CardRestore struct {
	Position CardPosition `json:"position"`
	Size     CardSize     `json:"size"`
}

// Card represents one window instance in the deck
type Card struct {
	ID        string                 `json:"id"`
	Hash      string                 `json:"hash"` // Deterministic hash for session restoration
	Type      CardType               `json:"type"`
	Title     string                 `json:"title"`
	Position  CardPosition           `json:"position"`
	Size      CardSize               `json:"size"`
	Z         int                    `json:"z"`
	Focused   bool                   `json:"focused"`
	Minimized bool                   `json:"minimized"`
	Maximized bool                   `json:"maximized"`
	Pinned    bool                   `json:"pinned"`
	SnapZone  SnapZone               `json:"snap_zone"`
	ParentID  *string                `json:"parent_id,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Payload   map[string]interface{} `json:"payload"` // Opaque per-type state (chat tab id, task tree, ...)
	Services  []string               `json:"services"`
	Restore   *CardRestore           `json:"restore,omitempty"`
}

// DeckStats contains card manager statistics
type DeckStats struct {
	TotalCards     int     `json:"total_cards"`
	VisibleCards   int     `json:"visible_cards"`
	MinimizedCards int     `json:"minimized_cards"`
	FocusedCardID  *string `json:"focused_card_id,omitempty"`
	FocusedHash    *string `json:"focused_card_hash,omitempty"` // Hash for restoration
	TopZ           int     `json:"top_z"`
}
