package geometry

import "github.com/HobbyCoders/deck/internal/shared/types"

// Rect is an axis-aligned rectangle in workspace coordinates
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectOf builds a Rect from a card's position and size
func RectOf(pos types.CardPosition, size types.CardSize) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Position returns the rect's origin as a card position
func (r Rect) Position() types.CardPosition {
	return types.CardPosition{X: r.X, Y: r.Y}
}

// Size returns the rect's dimensions as a card size
func (r Rect) Size() types.CardSize {
	return types.CardSize{Width: r.Width, Height: r.Height}
}

// Right returns the x coordinate of the rect's right edge
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the rect's bottom edge
func (r Rect) Bottom() int { return r.Y + r.Height }
