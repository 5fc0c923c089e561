package geometry

import "github.com/HobbyCoders/deck/internal/shared/types"

// SnapThreshold is the default pixel distance from a workspace edge at
// which a dragged card starts snapping
const SnapThreshold = 20

// Classify maps a candidate rect to one of the nine snap zones.
// Corners are checked before single edges, so a rect within threshold
// of both a horizontal and a vertical edge always classifies as the
// corner, never as a plain edge.
func Classify(r Rect, bounds types.WorkspaceBounds, threshold int) types.SnapZone {
	left := r.X <= threshold
	right := r.Right() >= bounds.Width-threshold
	top := r.Y <= threshold
	bottom := r.Bottom() >= bounds.Height-threshold

	switch {
	case top && left:
		return types.SnapTopLeft
	case top && right:
		return types.SnapTopRight
	case bottom && left:
		return types.SnapBottomLeft
	case bottom && right:
		return types.SnapBottomRight
	case left:
		return types.SnapLeft
	case right:
		return types.SnapRight
	case top:
		return types.SnapTop
	case bottom:
		return types.SnapBottom
	default:
		return types.SnapNone
	}
}

// SnapRect returns the placement rect for a zone: half the workspace
// for edges, a quarter for corners. The second return is false for
// SnapNone.
func SnapRect(zone types.SnapZone, bounds types.WorkspaceBounds) (Rect, bool) {
	w := bounds.Width
	h := bounds.Height
	halfW := w / 2
	halfH := h / 2

	switch zone {
	case types.SnapLeft:
		return Rect{X: 0, Y: 0, Width: halfW, Height: h}, true
	case types.SnapRight:
		return Rect{X: halfW, Y: 0, Width: halfW, Height: h}, true
	case types.SnapTop:
		return Rect{X: 0, Y: 0, Width: w, Height: halfH}, true
	case types.SnapBottom:
		return Rect{X: 0, Y: halfH, Width: w, Height: halfH}, true
	case types.SnapTopLeft:
		return Rect{X: 0, Y: 0, Width: halfW, Height: halfH}, true
	case types.SnapTopRight:
		return Rect{X: halfW, Y: 0, Width: halfW, Height: halfH}, true
	case types.SnapBottomLeft:
		return Rect{X: 0, Y: halfH, Width: halfW, Height: halfH}, true
	case types.SnapBottomRight:
		return Rect{X: halfW, Y: halfH, Width: halfW, Height: halfH}, true
	default:
		return Rect{}, false
	}
}

// Preview returns the advisory overlay rect for a candidate drag rect,
// or false when the rect is not within threshold of any edge. The
// preview is display-only; committing happens separately at drag end.
func Preview(r Rect, bounds types.WorkspaceBounds, threshold int) (types.SnapPreview, bool) {
	zone := Classify(r, bounds, threshold)
	if zone == types.SnapNone {
		return types.SnapPreview{}, false
	}

	rect, _ := SnapRect(zone, bounds)
	return types.SnapPreview{
		Zone:   zone,
		X:      rect.X,
		Y:      rect.Y,
		Width:  rect.Width,
		Height: rect.Height,
	}, true
}
