package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/HobbyCoders/deck/internal/shared/utils"
	"github.com/bytedance/sonic"
)

// Manager handles template persistence with an in-memory cache
type Manager struct {
	templates sync.Map
	dir       string
}

// NewManager creates a registry manager persisting under dir
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Save writes a template to the registry
func (m *Manager) Save(ctx context.Context, tmpl *types.Template) error {
	if err := utils.ValidateID(tmpl.ID, "template ID", true); err != nil {
		return err
	}
	if err := utils.ValidateName(tmpl.Name, "template name"); err != nil {
		return err
	}
	if err := utils.ValidateCategory(tmpl.Category, false); err != nil {
		return err
	}
	if err := utils.ValidateTags(tmpl.Tags); err != nil {
		return err
	}

	tmpl.UpdatedAt = time.Now()
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = time.Now()
	}

	data, err := sonic.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create templates dir: %w", err)
	}
	if err := os.WriteFile(m.templatePath(tmpl.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	m.templates.Store(tmpl.ID, tmpl)

	return nil
}

// Load reads a template from cache or disk
func (m *Manager) Load(ctx context.Context, templateID string) (*types.Template, error) {
	if cached, ok := m.templates.Load(templateID); ok {
		return cached.(*types.Template), nil
	}

	data, err := os.ReadFile(m.templatePath(templateID))
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	var tmpl types.Template
	if err := sonic.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}

	m.templates.Store(templateID, &tmpl)

	return &tmpl, nil
}

// LoadAll scans the templates directory into the cache
func (m *Manager) LoadAll(ctx context.Context) error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to scan templates dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		templateID := strings.TrimSuffix(name, ".json")
		if _, err := m.Load(ctx, templateID); err != nil {
			continue
		}
	}

	return nil
}

// List returns all templates, optionally filtered by category
func (m *Manager) List(category *string) ([]*types.Template, error) {
	var templates []*types.Template

	m.templates.Range(func(_, value interface{}) bool {
		tmpl := value.(*types.Template)
		if category == nil || tmpl.Category == *category {
			templates = append(templates, tmpl)
		}
		return true
	})

	return templates, nil
}

// ListMetadata lists metadata for all templates
func (m *Manager) ListMetadata(category *string) ([]types.TemplateMetadata, error) {
	templates, err := m.List(category)
	if err != nil {
		return nil, err
	}

	metadata := make([]types.TemplateMetadata, len(templates))
	for i, tmpl := range templates {
		metadata[i] = tmpl.ToMetadata()
	}

	return metadata, nil
}

// Delete removes a template from disk and cache
func (m *Manager) Delete(ctx context.Context, templateID string) error {
	if err := os.Remove(m.templatePath(templateID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	m.templates.Delete(templateID)

	return nil
}

// Exists checks if a template exists
func (m *Manager) Exists(templateID string) bool {
	if _, ok := m.templates.Load(templateID); ok {
		return true
	}

	_, err := os.Stat(m.templatePath(templateID))
	return err == nil
}

// Stats returns registry statistics
func (m *Manager) Stats() types.RegistryStats {
	var total int
	categories := make(map[string]int)
	var lastUpdated *time.Time

	m.templates.Range(func(_, value interface{}) bool {
		tmpl := value.(*types.Template)
		total++
		categories[tmpl.Category]++

		if lastUpdated == nil || tmpl.UpdatedAt.After(*lastUpdated) {
			updated := tmpl.UpdatedAt
			lastUpdated = &updated
		}

		return true
	})

	return types.RegistryStats{
		TotalTemplates: total,
		Categories:     categories,
		LastUpdated:    lastUpdated,
	}
}

// templatePath generates the filesystem path for a template
func (m *Manager) templatePath(templateID string) string {
	return filepath.Join(m.dir, templateID+".json")
}
