package files

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Per-file match cap keeps content search results bounded
const maxMatchesPerFile = 100

// SearchOps handles search and filtering operations
type SearchOps struct {
	*Ops
}

// GetTools returns search operation tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.find",
			Name:        "Find Files",
			Description: "Find files by name pattern",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Filename pattern (e.g. *.md)", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "files.glob",
			Name:        "Glob Match",
			Description: "Match files with doublestar glob patterns",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "pattern", Type: "string", Description: "Glob pattern (e.g. **/*.go)", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "files.search",
			Name:        "Search Content",
			Description: "Search text in files under a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Root directory", Required: true},
				{Name: "query", Type: "string", Description: "Text to search for", Required: true},
				{Name: "extensions", Type: "array", Description: "Limit to extensions", Required: false},
			},
			Returns: "array",
		},
	}
}

// Find finds files by name pattern
func (s *SearchOps) Find(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok {
		return Failure("path parameter required")
	}
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return Failure("pattern parameter required")
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	matches := []string{}
	conf := fastwalk.Config{Follow: false}

	walkErr := fastwalk.Walk(&conf, fullPath, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		matched, _ := filepath.Match(pattern, filepath.Base(p))
		if matched {
			relPath, _ := filepath.Rel(fullPath, p)
			matches = append(matches, relPath)
		}
		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("find failed: %v", walkErr))
	}

	return Success(map[string]interface{}{"path": path, "matches": matches, "count": len(matches)})
}

// Glob performs advanced glob matching
func (s *SearchOps) Glob(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok {
		return Failure("path parameter required")
	}
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return Failure("pattern parameter required")
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(fullPath, pattern))
	if err != nil {
		return Failure(fmt.Sprintf("glob failed: %v", err))
	}

	relMatches := []string{}
	for _, match := range matches {
		if relPath, err := filepath.Rel(fullPath, match); err == nil {
			relMatches = append(relMatches, relPath)
		}
	}

	return Success(map[string]interface{}{"path": path, "matches": relMatches, "count": len(relMatches)})
}

// SearchContent searches text in files
func (s *SearchOps) SearchContent(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok {
		return Failure("path parameter required")
	}
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return Failure("query parameter required")
	}

	extensions := make(map[string]bool)
	if extArr, ok := params["extensions"].([]interface{}); ok {
		for _, ext := range extArr {
			if e, ok := ext.(string); ok {
				if !strings.HasPrefix(e, ".") {
					e = "." + e
				}
				extensions[e] = true
			}
		}
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	queryBytes := []byte(query)
	var mu sync.Mutex
	matches := []map[string]interface{}{}
	conf := fastwalk.Config{Follow: false}

	walkErr := fastwalk.Walk(&conf, fullPath, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if len(extensions) > 0 && !extensions[filepath.Ext(p)] {
			return nil
		}

		file, err := os.Open(p)
		if err != nil {
			return nil
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		lineNum := 1
		matchLines := []map[string]interface{}{}

		for scanner.Scan() {
			if bytes.Contains(scanner.Bytes(), queryBytes) {
				matchLines = append(matchLines, map[string]interface{}{
					"line":    lineNum,
					"content": scanner.Text(),
				})
			}
			lineNum++
			if len(matchLines) >= maxMatchesPerFile {
				break
			}
		}

		if len(matchLines) > 0 {
			relPath, _ := filepath.Rel(fullPath, p)
			mu.Lock()
			matches = append(matches, map[string]interface{}{
				"path":    relPath,
				"matches": matchLines,
				"count":   len(matchLines),
			})
			mu.Unlock()
		}

		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("search failed: %v", walkErr))
	}

	return Success(map[string]interface{}{"path": path, "query": query, "results": matches, "files": len(matches)})
}
