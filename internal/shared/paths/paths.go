// Package paths provides standardized filesystem paths for consistent access across the backend.
//
// All on-disk state lives under a single data root so deployments can relocate
// it with one config value. Service providers resolve user-visible paths through
// this package so the files sandbox and persistence layers agree on layout.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Subdirectories under the data root
const (
	// SessionsDir holds saved deck sessions
	SessionsDir = "sessions"

	// TemplatesDir holds installed card templates
	TemplatesDir = "templates"

	// WorkspaceDir holds user files exposed to the file browser
	WorkspaceDir = "workspace"

	// CardsDir holds per-card scratch data
	CardsDir = "cards"

	// TmpDir holds temporary files
	TmpDir = "tmp"
)

// Workspace subdirectories
const (
	Documents = "documents"
	Downloads = "downloads"
	Projects  = "projects"
)

// Root resolves paths under a configured data root
type Root struct {
	base string
}

// NewRoot creates a path resolver rooted at base
func NewRoot(base string) Root {
	return Root{base: filepath.Clean(base)}
}

// Base returns the data root directory
func (r Root) Base() string { return r.base }

// Sessions returns the saved sessions directory
func (r Root) Sessions() string { return filepath.Join(r.base, SessionsDir) }

// Templates returns the card templates directory
func (r Root) Templates() string { return filepath.Join(r.base, TemplatesDir) }

// Workspace returns the user workspace directory
func (r Root) Workspace() string { return filepath.Join(r.base, WorkspaceDir) }

// Tmp returns the temporary files directory
func (r Root) Tmp() string { return filepath.Join(r.base, TmpDir) }

// CardDir returns the scratch directory for a card
func (r Root) CardDir(cardID string) string {
	return filepath.Join(r.base, CardsDir, cardID)
}

// StandardDirectories returns all directories that should exist under the root
func (r Root) StandardDirectories() []string {
	return []string{
		r.Sessions(),
		r.Templates(),
		r.Workspace(),
		filepath.Join(r.Workspace(), Documents),
		filepath.Join(r.Workspace(), Downloads),
		filepath.Join(r.Workspace(), Projects),
		filepath.Join(r.base, CardsDir),
		r.Tmp(),
	}
}

// ResolveWorkspacePath resolves a user-supplied relative path inside the
// workspace, rejecting traversal outside of it.
func (r Root) ResolveWorkspacePath(relative string) (string, error) {
	if filepath.IsAbs(relative) {
		return "", fmt.Errorf("path must be relative: %s", relative)
	}

	resolved := filepath.Join(r.Workspace(), relative)
	if !r.Contains(resolved) {
		return "", fmt.Errorf("path escapes workspace: %s", relative)
	}

	return resolved, nil
}

// Contains reports whether path lies within the workspace directory
func (r Root) Contains(path string) bool {
	ws := r.Workspace()
	cleaned := filepath.Clean(path)
	return cleaned == ws || strings.HasPrefix(cleaned, ws+string(filepath.Separator))
}

// ValidateCardID checks if a card ID is valid for path construction
func ValidateCardID(cardID string) error {
	if cardID == "" {
		return fmt.Errorf("card ID cannot be empty")
	}
	if filepath.IsAbs(cardID) {
		return fmt.Errorf("card ID cannot be an absolute path")
	}
	if filepath.Clean(cardID) != cardID {
		return fmt.Errorf("card ID contains invalid path components")
	}
	return nil
}
