package types

import "time"

// Template represents an installable card template package. Opening a
// template spawns a card of the given type pre-seeded with its payload.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	Version     string    `json:"version"`
	Author      string    `json:"author"`
	Type        CardType  `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Services    []string  `json:"services"`
	Tags        []string  `json:"tags"`

	// Initial card state
	Payload map[string]interface{} `json:"payload,omitempty"`
	Size    *CardSize              `json:"size,omitempty"`
}

// TemplateMetadata contains summary information about a template
type TemplateMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	Version     string    `json:"version"`
	Author      string    `json:"author"`
	Type        CardType  `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
}

// ToMetadata extracts metadata from a template
func (t *Template) ToMetadata() TemplateMetadata {
	return TemplateMetadata{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Icon:        t.Icon,
		Category:    t.Category,
		Version:     t.Version,
		Author:      t.Author,
		Type:        t.Type,
		CreatedAt:   t.CreatedAt,
		Tags:        t.Tags,
	}
}

// RegistryStats contains template registry statistics
type RegistryStats struct {
	TotalTemplates int            `json:"total_templates"`
	Categories     map[string]int `json:"categories"`
	LastUpdated    *time.Time     `json:"last_updated,omitempty"`
}
