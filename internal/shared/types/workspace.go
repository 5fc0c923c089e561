package types

// LayoutMode selects how the workspace arranges its cards
type LayoutMode string

const (
	// LayoutFloat renders free-floating windows (default desktop mode)
	LayoutFloat LayoutMode = "float"
	// LayoutGrid auto-tiles visible cards into a near-square grid
	LayoutGrid LayoutMode = "grid"
	// LayoutStack shows one card at a time with swipe navigation (mobile)
	LayoutStack LayoutMode = "stack"
)

// WorkspaceBounds is the live measurement of the workspace container.
// The client pushes a new measurement whenever its container box changes.
type WorkspaceBounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SnapPreview is the advisory overlay rectangle shown while a drag is
// within threshold distance of a workspace edge
type SnapPreview struct {
	Zone   SnapZone `json:"zone"`
	X      int      `json:"x"`
	Y      int      `json:"y"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
}
