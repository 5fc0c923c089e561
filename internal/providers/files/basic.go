package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/bytedance/sonic"
)

// BasicOps handles core file operations
type BasicOps struct {
	*Ops
}

// GetTools returns basic operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.read",
			Name:        "Read File",
			Description: "Read file contents as text",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "files.write",
			Name:        "Write File",
			Description: "Write text content to a file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Content to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.append",
			Name:        "Append File",
			Description: "Append text content to a file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Content to append", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.delete",
			Name:        "Delete File",
			Description: "Delete a file or empty directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.exists",
			Name:        "File Exists",
			Description: "Check if a file or directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.copy",
			Name:        "Copy File",
			Description: "Copy a file",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.move",
			Name:        "Move File",
			Description: "Move or rename a file",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.json.read",
			Name:        "Read JSON",
			Description: "Read and parse a JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.json.write",
			Name:        "Write JSON",
			Description: "Serialize data to a JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to serialize", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Read reads file contents
func (b *BasicOps) Read(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}
	if info.Size() > MaxReadSize {
		return Failure(fmt.Sprintf("file too large: %d bytes", info.Size()))
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "content": string(data), "size": len(data)})
}

// Write writes content to a file, creating parent directories as needed
func (b *BasicOps) Write(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	content, ok := params["content"].(string)
	if !ok {
		return Failure("content parameter required")
	}

	fullPath, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "written": len(content)})
}

// Append appends content to a file
func (b *BasicOps) Append(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	content, ok := params["content"].(string)
	if !ok {
		return Failure("content parameter required")
	}

	fullPath, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	file, err := os.OpenFile(fullPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Failure(fmt.Sprintf("append failed: %v", err))
	}
	defer file.Close()

	n, err := file.WriteString(content)
	if err != nil {
		return Failure(fmt.Sprintf("append failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "written": n})
}

// Delete removes a file or empty directory
func (b *BasicOps) Delete(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.Remove(fullPath); err != nil {
		return Failure(fmt.Sprintf("delete failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "deleted": true})
}

// Exists checks if a path exists
func (b *BasicOps) Exists(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	_, statErr := os.Stat(fullPath)
	return Success(map[string]interface{}{"path": path, "exists": statErr == nil})
}

// Copy copies a file
func (b *BasicOps) Copy(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	destination, ok := params["destination"].(string)
	if !ok || destination == "" {
		return Failure("destination parameter required")
	}

	fullSource, err := b.resolve(source)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := b.resolve(destination)
	if err != nil {
		return Failure(err.Error())
	}

	src, err := os.Open(fullSource)
	if err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(fullDest), 0o755); err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}
	dst, err := os.Create(fullDest)
	if err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}
	defer dst.Close()

	copied, err := io.Copy(dst, src)
	if err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}

	return Success(map[string]interface{}{"source": source, "destination": destination, "bytes": copied})
}

// Move moves or renames a file
func (b *BasicOps) Move(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	destination, ok := params["destination"].(string)
	if !ok || destination == "" {
		return Failure("destination parameter required")
	}

	fullSource, err := b.resolve(source)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := b.resolve(destination)
	if err != nil {
		return Failure(err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(fullDest), 0o755); err != nil {
		return Failure(fmt.Sprintf("move failed: %v", err))
	}
	if err := os.Rename(fullSource, fullDest); err != nil {
		return Failure(fmt.Sprintf("move failed: %v", err))
	}

	return Success(map[string]interface{}{"source": source, "destination": destination, "moved": true})
}

// ReadJSON reads and parses a JSON file
func (b *BasicOps) ReadJSON(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	var parsed interface{}
	if err := sonic.Unmarshal(data, &parsed); err != nil {
		return Failure(fmt.Sprintf("parse failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "data": parsed})
}

// WriteJSON serializes data to a JSON file
func (b *BasicOps) WriteJSON(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	payload, ok := params["data"]
	if !ok {
		return Failure("data parameter required")
	}

	fullPath, err := b.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	data, err := sonic.MarshalIndent(payload, "", "  ")
	if err != nil {
		return Failure(fmt.Sprintf("marshal failed: %v", err))
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "written": len(data)})
}
