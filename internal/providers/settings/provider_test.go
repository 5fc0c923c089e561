package settings

import (
	"testing"
)

func TestGetDefault(t *testing.T) {
	p := NewProvider(t.TempDir())

	result, err := p.Execute("settings.get", map[string]interface{}{"key": "appearance.theme"}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("Get failed: %v", *result.Error)
	}
	if result.Data["value"] != "dark" {
		t.Errorf("Expected dark theme default, got %v", result.Data["value"])
	}
}

func TestSetPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	p := NewProvider(dir)
	result, _ := p.Execute("settings.set", map[string]interface{}{
		"key":   "appearance.theme",
		"value": "light",
	}, nil)
	if !result.Success {
		t.Fatalf("Set failed: %v", *result.Error)
	}

	// A fresh provider on the same dir sees the override
	p2 := NewProvider(dir)
	result, _ = p2.Execute("settings.get", map[string]interface{}{"key": "appearance.theme"}, nil)
	if result.Data["value"] != "light" {
		t.Errorf("Override should survive restart, got %v", result.Data["value"])
	}
	// Default metadata is preserved
	if result.Data["default"] != "dark" {
		t.Errorf("Default should survive override, got %v", result.Data["default"])
	}
}

func TestCustomKey(t *testing.T) {
	p := NewProvider(t.TempDir())

	p.Execute("settings.set", map[string]interface{}{"key": "plugin.thing", "value": float64(7)}, nil)

	result, _ := p.Execute("settings.get", map[string]interface{}{"key": "plugin.thing"}, nil)
	if !result.Success {
		t.Fatal("Custom key should be gettable")
	}
	if result.Data["type"] != "number" {
		t.Errorf("Type should be inferred, got %v", result.Data["type"])
	}
	if result.Data["category"] != "custom" {
		t.Errorf("Unknown keys land in custom category, got %v", result.Data["category"])
	}
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	p := NewProvider(dir)

	p.Execute("settings.set", map[string]interface{}{"key": "deck.snap_enabled", "value": false}, nil)
	result, _ := p.Execute("settings.reset", map[string]interface{}{"key": "deck.snap_enabled"}, nil)
	if !result.Success {
		t.Fatalf("Reset failed: %v", *result.Error)
	}

	result, _ = p.Execute("settings.get", map[string]interface{}{"key": "deck.snap_enabled"}, nil)
	if result.Data["value"] != true {
		t.Errorf("Reset should restore default, got %v", result.Data["value"])
	}

	// Override file removed, so a restart also sees the default
	p2 := NewProvider(dir)
	result, _ = p2.Execute("settings.get", map[string]interface{}{"key": "deck.snap_enabled"}, nil)
	if result.Data["value"] != true {
		t.Errorf("Reset should clear persisted override, got %v", result.Data["value"])
	}
}

func TestListByCategory(t *testing.T) {
	p := NewProvider(t.TempDir())

	result, _ := p.Execute("settings.list", map[string]interface{}{"category": "deck"}, nil)
	settings := result.Data["settings"].([]Setting)
	if len(settings) == 0 {
		t.Fatal("Deck category should have settings")
	}
	for _, s := range settings {
		if s.Category != "deck" {
			t.Errorf("Filter leaked category %s", s.Category)
		}
	}
}

func TestExportImport(t *testing.T) {
	p := NewProvider(t.TempDir())

	result, _ := p.Execute("settings.import", map[string]interface{}{
		"settings": map[string]interface{}{
			"appearance.theme":   "light",
			"general.language":   "de",
			"custom.new_setting": "x",
		},
	}, nil)
	if result.Data["imported"] != 3 {
		t.Errorf("Expected 3 imported, got %v", result.Data["imported"])
	}

	result, _ = p.Execute("settings.export", nil, nil)
	exported := result.Data["settings"].(map[string]interface{})
	if exported["appearance.theme"] != "light" {
		t.Errorf("Export should reflect imports, got %v", exported["appearance.theme"])
	}
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider(t.TempDir())

	result, err := p.Execute("settings.nope", nil, nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Success {
		t.Error("Unknown tool should fail")
	}
}
