// Package main is the entry point for the deck backend server.
//
// This application is the authoritative state holder for a card-based
// workspace: clients render what the backend says and forward pointer
// input back over the deck stream.
//
// The server provides:
//   - REST API for card, workspace, template and session management
//   - WebSocket streaming for pointer gestures and deck updates
//   - Service provider registry (files, terminal, settings, profile)
//   - Session persistence
//   - Rate limiting and security
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./deckd -port 8000 -data ./data
//
//	# Development mode (colored logs, debug level)
//	./deckd -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown (saves the default session)
package main
