// Package geometry implements the windowing math for the deck.
//
// Everything here is pure arithmetic over in-memory values: bounds
// clamping, pointer-gesture trackers for drag and resize, nine-way
// snap-zone classification with preview rectangles, and the auto-tile
// layout solver. Authoritative card state lives in the card manager;
// this package only computes the next geometry and hands it back.
//
// Key Components:
//   - Clamp: keeps a window's header reachable inside the workspace
//   - DragTracker: idle → dragging → idle pointer state machine
//   - ResizeTracker: idle → resizing(edge) → idle, eight edge codes
//   - Classify/Preview/SnapRect: snap-zone detection and placement
//   - GridLayout/StackLayout: workspace auto-tiling
package geometry
