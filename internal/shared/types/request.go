package types

// OpenCardRequest represents a request to spawn a new card
type OpenCardRequest struct {
	Type     CardType               `json:"type" binding:"required"`
	Title    string                 `json:"title"`
	Position *CardPosition          `json:"position,omitempty"`
	Size     *CardSize              `json:"size,omitempty"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
	ParentID *string                `json:"parent_id,omitempty"`
}

// WindowUpdateRequest represents a geometry update for an existing card
type WindowUpdateRequest struct {
	Position *CardPosition `json:"position,omitempty"`
	Size     *CardSize     `json:"size,omitempty"`
}

// SnapRequest docks a card into a named zone, or releases it with SnapNone
type SnapRequest struct {
	Zone SnapZone `json:"zone" binding:"required"`
}

// LayoutRequest switches the workspace layout mode
type LayoutRequest struct {
	Mode LayoutMode `json:"mode" binding:"required"`
}

// RenameRequest updates a card's title
type RenameRequest struct {
	Title string `json:"title" binding:"required"`
}

// BoundsRequest reports a new workspace container measurement
type BoundsRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
	CardID *string                `json:"card_id,omitempty"`
}
