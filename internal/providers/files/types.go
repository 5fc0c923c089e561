package files

import (
	"time"

	"github.com/HobbyCoders/deck/internal/shared/paths"
	"github.com/HobbyCoders/deck/internal/shared/types"
)

// MaxReadSize caps single-file reads returned over the wire (10MB)
const MaxReadSize = 10 * 1024 * 1024

// Entry represents one directory listing entry
type Entry struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	IsDir     bool      `json:"is_dir"`
	Mode      string    `json:"mode"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension,omitempty"`
}

// Ops provides common helpers shared by all operation modules
type Ops struct {
	Root paths.Root
}

// resolve maps a user-supplied path into the workspace sandbox
func (ops *Ops) resolve(path string) (string, error) {
	return ops.Root.ResolveWorkspacePath(path)
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
