// Package settings provides user preference management for settings cards.
//
// Settings are key/value pairs grouped by category. Defaults are registered
// at construction, user overrides persist as JSON files under the data root
// and are reloaded on startup, so a restart keeps user preferences while
// new defaults still appear.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/bytedance/sonic"
)

// Setting represents one preference entry
type Setting struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Type        string      `json:"type"` // "string", "number", "boolean", "json"
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Default     interface{} `json:"default"`
}

// Provider implements settings management
type Provider struct {
	dir   string
	cache sync.Map
}

// NewProvider creates a settings provider persisting under dir
func NewProvider(dir string) *Provider {
	p := &Provider{dir: dir}
	p.registerDefaults()
	p.loadPersisted()
	return p
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:          "settings",
		Name:        "Settings Service",
		Description: "User preferences and deck configuration",
		Category:    types.CategorySettings,
		Capabilities: []string{
			"get",
			"set",
			"list",
			"reset",
			"export",
			"import",
		},
		Tools: []types.Tool{
			{
				ID:          "settings.get",
				Name:        "Get Setting",
				Description: "Get a preference value",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Setting key", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "settings.set",
				Name:        "Set Setting",
				Description: "Set a preference value",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Setting key", Required: true},
					{Name: "value", Type: "any", Description: "Setting value", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "settings.list",
				Name:        "List Settings",
				Description: "List settings, optionally filtered by category",
				Parameters: []types.Parameter{
					{Name: "category", Type: "string", Description: "Category filter", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "settings.reset",
				Name:        "Reset Setting",
				Description: "Reset a setting to its default value",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Setting key", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "settings.export",
				Name:        "Export Settings",
				Description: "Export all settings as a flat object",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "settings.import",
				Name:        "Import Settings",
				Description: "Import settings from a flat object",
				Parameters: []types.Parameter{
					{Name: "settings", Type: "object", Description: "Settings to import", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "settings.categories",
				Name:        "List Categories",
				Description: "Get all setting categories",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
		},
	}
}

// Execute runs a settings operation
func (s *Provider) Execute(toolID string, params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "settings.get":
		return s.get(params)
	case "settings.set":
		return s.set(params)
	case "settings.list":
		return s.list(params)
	case "settings.reset":
		return s.reset(params)
	case "settings.export":
		return s.exportSettings()
	case "settings.import":
		return s.importSettings(params)
	case "settings.categories":
		return s.categories()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// registerDefaults seeds the built-in preference set
func (s *Provider) registerDefaults() {
	defaults := []Setting{
		// Appearance
		{Key: "appearance.theme", Value: "dark", Type: "string", Category: "appearance", Description: "UI theme", Default: "dark"},
		{Key: "appearance.wallpaper", Value: "gradient", Type: "string", Category: "appearance", Description: "Deck background", Default: "gradient"},
		{Key: "appearance.font_size", Value: 14, Type: "number", Category: "appearance", Description: "Base font size (px)", Default: 14},
		{Key: "appearance.animations", Value: true, Type: "boolean", Category: "appearance", Description: "Animate card transitions", Default: true},

		// Deck behavior
		{Key: "deck.default_layout", Value: "float", Type: "string", Category: "deck", Description: "Layout mode for new decks", Default: "float"},
		{Key: "deck.snap_enabled", Value: true, Type: "boolean", Category: "deck", Description: "Enable edge snapping while dragging", Default: true},
		{Key: "deck.restore_last_session", Value: true, Type: "boolean", Category: "deck", Description: "Restore last session on startup", Default: true},
		{Key: "deck.cascade_new_cards", Value: true, Type: "boolean", Category: "deck", Description: "Cascade placement for new cards", Default: true},

		// Terminal
		{Key: "terminal.font_family", Value: "JetBrains Mono", Type: "string", Category: "terminal", Description: "Terminal font", Default: "JetBrains Mono"},
		{Key: "terminal.scrollback", Value: 5000, Type: "number", Category: "terminal", Description: "Scrollback lines", Default: 5000},

		// General
		{Key: "general.language", Value: "en", Type: "string", Category: "general", Description: "Interface language", Default: "en"},
		{Key: "general.notifications", Value: true, Type: "boolean", Category: "general", Description: "Enable notifications", Default: true},
	}

	for _, setting := range defaults {
		s.cache.Store(setting.Key, setting)
	}
}

// loadPersisted overlays saved user values onto the defaults
func (s *Provider) loadPersisted() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		var setting Setting
		if err := sonic.Unmarshal(data, &setting); err != nil || setting.Key == "" {
			continue
		}

		// Keep default metadata when the key is known
		if val, ok := s.cache.Load(setting.Key); ok {
			known := val.(Setting)
			known.Value = setting.Value
			s.cache.Store(setting.Key, known)
		} else {
			s.cache.Store(setting.Key, setting)
		}
	}
}

func (s *Provider) get(params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}

	val, ok := s.cache.Load(key)
	if !ok {
		return failure(fmt.Sprintf("setting not found: %s", key))
	}

	setting := val.(Setting)
	return success(map[string]interface{}{
		"key":         setting.Key,
		"value":       setting.Value,
		"type":        setting.Type,
		"category":    setting.Category,
		"description": setting.Description,
		"default":     setting.Default,
	})
}

func (s *Provider) set(params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}
	value := params["value"]
	if value == nil {
		return failure("value parameter required")
	}

	var setting Setting
	if val, ok := s.cache.Load(key); ok {
		setting = val.(Setting)
		setting.Value = value
	} else {
		setting = Setting{
			Key:      key,
			Value:    value,
			Type:     inferType(value),
			Category: "custom",
		}
	}

	s.cache.Store(key, setting)

	if err := s.persist(setting); err != nil {
		return failure(fmt.Sprintf("failed to persist setting: %v", err))
	}

	return success(map[string]interface{}{"stored": true, "key": key})
}

func (s *Provider) list(params map[string]interface{}) (*types.Result, error) {
	category, _ := params["category"].(string)

	var settings []Setting
	s.cache.Range(func(_, value interface{}) bool {
		setting := value.(Setting)
		if category == "" || setting.Category == category {
			settings = append(settings, setting)
		}
		return true
	})

	return success(map[string]interface{}{"settings": settings, "count": len(settings)})
}

func (s *Provider) reset(params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return failure("key parameter required")
	}

	val, ok := s.cache.Load(key)
	if !ok {
		return failure(fmt.Sprintf("setting not found: %s", key))
	}

	setting := val.(Setting)
	setting.Value = setting.Default
	s.cache.Store(key, setting)

	os.Remove(s.settingPath(key))

	return success(map[string]interface{}{"reset": true, "key": key, "value": setting.Default})
}

func (s *Provider) exportSettings() (*types.Result, error) {
	settings := make(map[string]interface{})
	s.cache.Range(func(_, value interface{}) bool {
		setting := value.(Setting)
		settings[setting.Key] = setting.Value
		return true
	})

	return success(map[string]interface{}{"settings": settings})
}

func (s *Provider) importSettings(params map[string]interface{}) (*types.Result, error) {
	settingsData, ok := params["settings"].(map[string]interface{})
	if !ok {
		return failure("settings parameter must be an object")
	}

	count := 0
	for key, value := range settingsData {
		result, err := s.set(map[string]interface{}{"key": key, "value": value})
		if err == nil && result.Success {
			count++
		}
	}

	return success(map[string]interface{}{"imported": count})
}

func (s *Provider) categories() (*types.Result, error) {
	categorySet := make(map[string]bool)
	s.cache.Range(func(_, value interface{}) bool {
		categorySet[value.(Setting).Category] = true
		return true
	})

	categories := make([]string, 0, len(categorySet))
	for cat := range categorySet {
		categories = append(categories, cat)
	}

	return success(map[string]interface{}{"categories": categories})
}

// persist writes one setting to disk
func (s *Provider) persist(setting Setting) error {
	data, err := sonic.Marshal(setting)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.settingPath(setting.Key), data, 0o644)
}

func (s *Provider) settingPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}

func inferType(value interface{}) string {
	switch value.(type) {
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case string:
		return "string"
	default:
		return "json"
	}
}
