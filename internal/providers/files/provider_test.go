package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HobbyCoders/deck/internal/shared/paths"
	"github.com/HobbyCoders/deck/internal/shared/types"
)

func newTestProvider(t *testing.T) (*Provider, paths.Root) {
	t.Helper()
	root := paths.NewRoot(t.TempDir())
	if err := os.MkdirAll(root.Workspace(), 0o755); err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}
	return NewProvider(root), root
}

func mustSucceed(t *testing.T) func(*types.Result, error) map[string]interface{} {
	t.Helper()
	return func(result *types.Result, err error) map[string]interface{} {
		return checkResult(t, result, err)
	}
}

func checkResult(t *testing.T, result *types.Result, err error) map[string]interface{} {
	t.Helper()
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("operation failed: %v", *result.Error)
	}
	return result.Data
}

func TestDefinition(t *testing.T) {
	p, _ := newTestProvider(t)
	def := p.Definition()

	if def.ID != "files" {
		t.Errorf("Expected files service ID, got %s", def.ID)
	}
	if def.Category != types.CategoryFiles {
		t.Errorf("Expected files category, got %s", def.Category)
	}
	if len(def.Tools) == 0 {
		t.Fatal("Service should expose tools")
	}

	seen := make(map[string]bool)
	for _, tool := range def.Tools {
		if seen[tool.ID] {
			t.Errorf("Duplicate tool ID: %s", tool.ID)
		}
		seen[tool.ID] = true
	}
	for _, id := range []string{"files.read", "files.dir.list", "files.glob", "files.zip.create"} {
		if !seen[id] {
			t.Errorf("Missing tool: %s", id)
		}
	}
}

func TestWriteAndRead(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{
		"path":    "documents/note.txt",
		"content": "hello deck",
	}, nil))

	data := mustSucceed(t)(p.Execute("files.read", map[string]interface{}{
		"path": "documents/note.txt",
	}, nil))

	if data["content"] != "hello deck" {
		t.Errorf("Read content mismatch: %v", data["content"])
	}
}

func TestAppend(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "log.txt", "content": "one\n"}, nil))
	mustSucceed(t)(p.Execute("files.append", map[string]interface{}{"path": "log.txt", "content": "two\n"}, nil))

	data := mustSucceed(t)(p.Execute("files.read", map[string]interface{}{"path": "log.txt"}, nil))
	if data["content"] != "one\ntwo\n" {
		t.Errorf("Append result mismatch: %q", data["content"])
	}
}

func TestTraversalRejected(t *testing.T) {
	p, _ := newTestProvider(t)

	result, err := p.Execute("files.read", map[string]interface{}{"path": "../sessions/secret"}, nil)
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if result.Success {
		t.Error("Traversal outside the workspace should fail")
	}

	result, _ = p.Execute("files.write", map[string]interface{}{"path": "/etc/passwd", "content": "x"}, nil)
	if result.Success {
		t.Error("Absolute paths should fail")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.json.write", map[string]interface{}{
		"path": "config.json",
		"data": map[string]interface{}{"theme": "dark", "columns": float64(3)},
	}, nil))

	data := mustSucceed(t)(p.Execute("files.json.read", map[string]interface{}{"path": "config.json"}, nil))
	parsed, ok := data["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected object, got %T", data["data"])
	}
	if parsed["theme"] != "dark" {
		t.Errorf("JSON round trip mismatch: %v", parsed)
	}
}

func TestCopyAndMove(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "a.txt", "content": "data"}, nil))
	mustSucceed(t)(p.Execute("files.copy", map[string]interface{}{"source": "a.txt", "destination": "b.txt"}, nil))
	mustSucceed(t)(p.Execute("files.move", map[string]interface{}{"source": "b.txt", "destination": "sub/c.txt"}, nil))

	data := mustSucceed(t)(p.Execute("files.exists", map[string]interface{}{"path": "sub/c.txt"}, nil))
	if data["exists"] != true {
		t.Error("Moved file should exist at destination")
	}
	data = mustSucceed(t)(p.Execute("files.exists", map[string]interface{}{"path": "b.txt"}, nil))
	if data["exists"] != false {
		t.Error("Moved file should be gone from source")
	}
}

func TestDirectoryList(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.dir.create", map[string]interface{}{"path": "projects/demo"}, nil))
	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "projects/readme.md", "content": "#"}, nil))
	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "projects/.hidden", "content": "x"}, nil))

	data := mustSucceed(t)(p.Execute("files.dir.list", map[string]interface{}{"path": "projects"}, nil))
	entries := data["entries"].([]Entry)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 visible entries, got %d", len(entries))
	}
	// Directories sort first
	if !entries[0].IsDir || entries[0].Name != "demo" {
		t.Errorf("Expected demo dir first, got %+v", entries[0])
	}

	data = mustSucceed(t)(p.Execute("files.dir.list", map[string]interface{}{"path": "projects", "hidden": true}, nil))
	if len(data["entries"].([]Entry)) != 3 {
		t.Error("Hidden flag should include dotfiles")
	}
}

func TestStatAndMime(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{
		"path":    "data.json",
		"content": `{"a": 1}`,
	}, nil))

	data := mustSucceed(t)(p.Execute("files.stat", map[string]interface{}{"path": "data.json"}, nil))
	if data["is_dir"] != false {
		t.Error("File should not be a directory")
	}
	if data["size"].(int64) == 0 {
		t.Error("Size should be non-zero")
	}

	data = mustSucceed(t)(p.Execute("files.mime", map[string]interface{}{"path": "data.json"}, nil))
	if data["is_text"] != true {
		t.Errorf("JSON should detect as text, got %v", data["mime"])
	}
}

func TestGlobAndFind(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "src/main.go", "content": "package main"}, nil))
	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "src/util/helper.go", "content": "package util"}, nil))
	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "src/readme.md", "content": "#"}, nil))

	data := mustSucceed(t)(p.Execute("files.glob", map[string]interface{}{"path": "src", "pattern": "**/*.go"}, nil))
	if data["count"] != 2 {
		t.Errorf("Expected 2 glob matches, got %v", data["count"])
	}

	data = mustSucceed(t)(p.Execute("files.find", map[string]interface{}{"path": "", "pattern": "*.md"}, nil))
	if data["count"] != 1 {
		t.Errorf("Expected 1 find match, got %v", data["count"])
	}
}

func TestSearchContent(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "a.txt", "content": "needle here\nnothing\n"}, nil))
	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "b.txt", "content": "nothing\n"}, nil))

	data := mustSucceed(t)(p.Execute("files.search", map[string]interface{}{"path": "", "query": "needle"}, nil))
	if data["files"] != 1 {
		t.Errorf("Expected matches in 1 file, got %v", data["files"])
	}
}

func TestZipRoundTrip(t *testing.T) {
	p, root := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "proj/one.txt", "content": "1"}, nil))
	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "proj/sub/two.txt", "content": "2"}, nil))

	mustSucceed(t)(p.Execute("files.zip.create", map[string]interface{}{"source": "proj", "output": "proj.zip"}, nil))

	data := mustSucceed(t)(p.Execute("files.zip.list", map[string]interface{}{"archive": "proj.zip"}, nil))
	if data["count"].(int) < 2 {
		t.Errorf("Archive should list at least 2 entries, got %v", data["count"])
	}

	mustSucceed(t)(p.Execute("files.zip.extract", map[string]interface{}{"archive": "proj.zip", "destination": "restored"}, nil))

	extracted, err := os.ReadFile(filepath.Join(root.Workspace(), "restored", "sub", "two.txt"))
	if err != nil {
		t.Fatalf("Extracted file missing: %v", err)
	}
	if string(extracted) != "2" {
		t.Errorf("Extracted content mismatch: %q", extracted)
	}
}

func TestGzipRoundTrip(t *testing.T) {
	p, _ := newTestProvider(t)

	mustSucceed(t)(p.Execute("files.write", map[string]interface{}{"path": "big.txt", "content": "compress me"}, nil))
	mustSucceed(t)(p.Execute("files.gzip.compress", map[string]interface{}{"path": "big.txt"}, nil))

	mustSucceed(t)(p.Execute("files.delete", map[string]interface{}{"path": "big.txt"}, nil))
	mustSucceed(t)(p.Execute("files.gzip.decompress", map[string]interface{}{"path": "big.txt.gz"}, nil))

	data := mustSucceed(t)(p.Execute("files.read", map[string]interface{}{"path": "big.txt"}, nil))
	if data["content"] != "compress me" {
		t.Errorf("Gzip round trip mismatch: %q", data["content"])
	}
}

func TestUnknownTool(t *testing.T) {
	p, _ := newTestProvider(t)

	result, err := p.Execute("files.nope", nil, nil)
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if result.Success {
		t.Error("Unknown tool should fail")
	}
}
