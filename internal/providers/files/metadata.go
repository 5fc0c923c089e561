package files

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
)

// MetadataOps handles file metadata operations
type MetadataOps struct {
	*Ops
}

// GetTools returns metadata operation tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.stat",
			Name:        "File Stats",
			Description: "Get detailed file metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.mime",
			Name:        "MIME Type",
			Description: "Detect file MIME type from content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.dir.size",
			Name:        "Directory Size",
			Description: "Calculate total size of a directory tree",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "human", Type: "boolean", Description: "Include human-readable size", Required: false},
			},
			Returns: "object",
		},
	}
}

// Stat gets file stats
func (m *MetadataOps) Stat(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := m.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":     path,
		"name":     info.Name(),
		"size":     info.Size(),
		"is_dir":   info.IsDir(),
		"mode":     info.Mode().String(),
		"modified": info.ModTime().Format(time.RFC3339),
	})
}

// MimeType detects a file's MIME type by content sniffing
func (m *MetadataOps) MimeType(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := m.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	mtype, err := mimetype.DetectFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("mime detection failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":      path,
		"mime":      mtype.String(),
		"extension": mtype.Extension(),
		"is_text":   strings.HasPrefix(mtype.String(), "text/") || mtype.Is("application/json"),
	})
}

// DirSize calculates the total size of a directory tree
func (m *MetadataOps) DirSize(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok {
		return Failure("path parameter required")
	}

	human := false
	if h, ok := params["human"].(bool); ok {
		human = h
	}

	fullPath, err := m.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	var totalSize int64
	fileCount := 0
	conf := fastwalk.Config{Follow: false}

	walkErr := fastwalk.Walk(&conf, fullPath, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		totalSize += info.Size()
		fileCount++
		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("size calculation failed: %v", walkErr))
	}

	result := map[string]interface{}{
		"path":  path,
		"bytes": totalSize,
		"files": fileCount,
	}
	if human {
		result["size"] = formatBytes(totalSize)
	}

	return Success(result)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
