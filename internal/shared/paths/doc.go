// Package paths provides standardized filesystem paths.
//
// This package defines the canonical on-disk layout under a single
// configurable data root. All filesystem operations should resolve
// through it to ensure consistency.
//
// # Directory Structure
//
//	<root>/
//	  ├── sessions/      (saved deck sessions)
//	  ├── templates/     (installed card templates)
//	  ├── workspace/     (user files, the file browser sandbox)
//	  │   ├── documents/
//	  │   ├── downloads/
//	  │   └── projects/
//	  ├── cards/         (per-card scratch data)
//	  └── tmp/           (temporary files)
//
// # Usage
//
//	root := paths.NewRoot(cfg.DataDir)
//
//	// Resolve user paths safely
//	p, err := root.ResolveWorkspacePath("documents/notes.txt")
//
//	// Validate containment
//	if root.Contains(somePath) {
//	    // Safe to access
//	}
package paths
