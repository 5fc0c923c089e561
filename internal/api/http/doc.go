// Package http provides HTTP handlers and routing for the deck REST API.
//
// This package implements all HTTP endpoints using the Gin framework,
// including health checks, card management, workspace layout, service
// execution, template registry, and session persistence. Mutations are
// fanned out to WebSocket stream clients through the wired Notifier.
//
// Endpoints:
//   - Health: / and /health, /stats
//   - Cards: /cards, /cards/:id, /cards/:id/{focus,window,minimize,restore,maximize,unmaximize,pin,rename,snap,payload}
//   - Workspace: /workspace, /workspace/bounds, /workspace/layout, /workspace/swipe
//   - Services: /services, /services/discover, /services/execute
//   - Templates: /registry/templates, /registry/templates/:id, /registry/templates/:id/open
//   - Sessions: /sessions, /sessions/:id, /sessions/:id/restore
//
// Example Usage:
//
//	handlers := http.NewHandlers(cards, deck, services, templates, sessions, metrics)
//	router.GET("/health", handlers.Health)
//	router.POST("/cards/:id/focus", handlers.FocusCard)
package http
