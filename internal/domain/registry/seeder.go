package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// Seeder loads hand-written YAML template definitions into the
// registry on startup. Existing templates are not overwritten, so
// user edits survive restarts.
type Seeder struct {
	manager *Manager
	seedDir string
	logger  *zap.Logger
}

// seedTemplate is the YAML shape of a template definition
type seedTemplate struct {
	ID          string                 `yaml:"id"`
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Icon        string                 `yaml:"icon"`
	Category    string                 `yaml:"category"`
	Version     string                 `yaml:"version"`
	Author      string                 `yaml:"author"`
	Type        string                 `yaml:"type"`
	Services    []string               `yaml:"services"`
	Tags        []string               `yaml:"tags"`
	Payload     map[string]interface{} `yaml:"payload"`
	Width       int                    `yaml:"width"`
	Height      int                    `yaml:"height"`
}

// NewSeeder creates a seeder reading definitions from seedDir
func NewSeeder(manager *Manager, seedDir string, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		manager: manager,
		seedDir: seedDir,
		logger:  logger,
	}
}

// Seed loads all .yaml definitions from the seed directory. Files
// that fail to parse are logged and skipped; a missing directory is
// not an error.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.seedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan seed dir: %w", err)
	}

	seeded := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		tmpl, err := s.parseFile(filepath.Join(s.seedDir, name))
		if err != nil {
			s.logger.Warn("skipping bad template seed",
				zap.String("file", name),
				zap.Error(err))
			continue
		}

		if s.manager.Exists(tmpl.ID) {
			continue
		}

		if err := s.manager.Save(ctx, tmpl); err != nil {
			s.logger.Warn("failed to save seeded template",
				zap.String("id", tmpl.ID),
				zap.Error(err))
			continue
		}
		seeded++
	}

	s.logger.Info("template seeding complete", zap.Int("seeded", seeded))
	return seeded, nil
}

// parseFile reads and validates one YAML template definition
func (s *Seeder) parseFile(path string) (*types.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedTemplate
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if seed.ID == "" {
		return nil, fmt.Errorf("seed template missing id")
	}
	if seed.Type == "" {
		return nil, fmt.Errorf("seed template %s missing card type", seed.ID)
	}

	tmpl := &types.Template{
		ID:          seed.ID,
		Name:        seed.Name,
		Description: seed.Description,
		Icon:        seed.Icon,
		Category:    seed.Category,
		Version:     seed.Version,
		Author:      seed.Author,
		Type:        types.CardType(seed.Type),
		Services:    seed.Services,
		Tags:        seed.Tags,
		Payload:     seed.Payload,
	}
	if tmpl.Name == "" {
		tmpl.Name = tmpl.ID
	}
	if seed.Width > 0 && seed.Height > 0 {
		tmpl.Size = &types.CardSize{Width: seed.Width, Height: seed.Height}
	}

	return tmpl, nil
}
