// Package files provides sandboxed file operations for the deck workspace.
//
// This package is organized into specialized modules:
//   - basic: Core file operations (read, write, append, delete, copy, move)
//   - directory: Directory operations (list, create)
//   - metadata: File metadata, MIME detection, directory sizing
//   - search: File search and filtering (glob, find, content)
//   - archives: Archive operations (ZIP, gzip)
//
// All operations resolve user-supplied paths through the shared workspace
// root, so cards can only ever touch files under <data-root>/workspace.
// Absolute paths and traversal outside the workspace are rejected before
// any disk access happens.
//
// Example Usage:
//
//	provider := files.NewProvider(root)
//	result, err := provider.Execute("files.read", params, cardCtx)
package files
