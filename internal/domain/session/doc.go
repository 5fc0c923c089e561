// Package session persists and restores deck snapshots.
//
// A session captures every card in the workspace, their geometry,
// z-order, snap state and payloads, plus the layout mode and the
// focused card's hash. Restoring rebuilds the cards with fresh IDs
// while keeping geometry and focus, so a saved evening deck comes
// back exactly as it was left.
//
// Sessions are stored as JSON files under the sessions data
// directory. A reserved "default" session is written on shutdown and
// restored on the next start.
package session
