package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HobbyCoders/deck/internal/shared/types"
)

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*Ops
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.dir.list",
			Name:        "List Directory",
			Description: "List contents of a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "hidden", Type: "boolean", Description: "Include hidden entries", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "files.dir.create",
			Name:        "Create Directory",
			Description: "Create a directory and any missing parents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// List lists directory contents sorted directories-first
func (d *DirectoryOps) List(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok {
		return Failure("path parameter required")
	}

	includeHidden := false
	if h, ok := params["hidden"].(bool); ok {
		includeHidden = h
	}

	fullPath, err := d.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	dirEntries, err := os.ReadDir(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("list failed: %v", err))
	}

	entries := []Entry{}
	for _, de := range dirEntries {
		name := de.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		info, err := de.Info()
		if err != nil {
			continue
		}

		entry := Entry{
			Name:     name,
			Path:     filepath.Join(path, name),
			Size:     info.Size(),
			IsDir:    de.IsDir(),
			Mode:     info.Mode().String(),
			Modified: info.ModTime(),
		}
		if !de.IsDir() {
			entry.Extension = filepath.Ext(name)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})

	return Success(map[string]interface{}{"path": path, "entries": entries, "count": len(entries)})
}

// Create creates a directory with parents
func (d *DirectoryOps) Create(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := d.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(fullPath, 0o755); err != nil {
		return Failure(fmt.Sprintf("mkdir failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "created": true})
}
