package types

import "time"

// Session represents a saved deck state
type Session struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Deck        Deck                   `json:"deck"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Deck contains the complete state of all cards and the workspace
type Deck struct {
	Cards       []CardSnapshot  `json:"cards"`
	Layout      LayoutMode      `json:"layout"`
	Bounds      WorkspaceBounds `json:"bounds"`
	FocusedID   *string         `json:"focused_card_id,omitempty"`
	FocusedHash *string         `json:"focused_card_hash,omitempty"` // Hash for restoration by properties
}

// CardSnapshot captures complete card state for restoration
type CardSnapshot struct {
	ID        string                 `json:"id"`
	Hash      string                 `json:"hash"`
	Type      CardType               `json:"type"`
	Title     string                 `json:"title"`
	Position  CardPosition           `json:"position"`
	Size      CardSize               `json:"size"`
	Z         int                    `json:"z"`
	Minimized bool                   `json:"minimized"`
	Maximized bool                   `json:"maximized"`
	Pinned    bool                   `json:"pinned"`
	SnapZone  SnapZone               `json:"snap_zone"`
	ParentID  *string                `json:"parent_id,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	Payload   map[string]interface{} `json:"payload"`
	Services  []string               `json:"services"`
}

// SessionMetadata contains summary information
type SessionMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CardCount   int       `json:"card_count"`
}

// ToMetadata extracts metadata from session
func (s *Session) ToMetadata() SessionMetadata {
	return SessionMetadata{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		CardCount:   len(s.Deck.Cards),
	}
}

// SessionStats contains session manager statistics
type SessionStats struct {
	TotalSessions int        `json:"total_sessions"`
	LastSaved     *time.Time `json:"last_saved,omitempty"`
	LastRestored  *time.Time `json:"last_restored,omitempty"`
}
