// Package registry provides card template management for the deck.
//
// The registry stores installable card templates that can be opened
// on demand. Templates carry the card type, initial payload, default
// size, service dependencies, and metadata.
//
// Components:
//   - Manager: Template CRUD operations with caching
//   - Seeder: Loads .yaml template definitions from disk on startup
//
// Storage Structure:
//   - Templates stored as JSON files
//   - Path: <templates-dir>/{template-id}.json
//   - Seed definitions are YAML for hand-editability
//
// Example Usage:
//
//	manager := registry.NewManager(templatesDir)
//	err := manager.Save(ctx, tmpl)
//	tmpl, err := manager.Load(ctx, "scratchpad")
//	templates, err := manager.List(&category)
package registry
