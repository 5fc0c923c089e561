// Package types provides shared data structures for the Deck service.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Card: One window instance in the workspace
//   - Template: Installable card template package
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Session: Deck snapshot for persistence
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - OpenCardRequest, WindowUpdateRequest, SnapRequest: card intents
//   - ExecuteRequest: Service tool execution
//   - WSMessage: WebSocket deck stream communication
//
// State Management:
//   - CardPosition, CardSize: window geometry
//   - SnapZone: nine-way edge/corner classification
//   - LayoutMode: workspace arrangement (float, grid, stack)
//   - DeckStats: card collection statistics
//
// Example Usage:
//
//	card := &types.Card{
//	    ID:    string(id.NewCardID()),
//	    Type:  types.CardChat,
//	    Title: "Chat",
//	    Size:  types.CardSize{Width: 480, Height: 360},
//	}
package types
