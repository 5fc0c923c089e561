package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/HobbyCoders/deck/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// SaveCardTemplate captures an open card as an installable template
func (h *Handlers) SaveCardTemplate(c *gin.Context) {
	var req struct {
		CardID      string   `json:"card_id" binding:"required"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Icon        string   `json:"icon"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateID(req.CardID, "card_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDescription(req.Description, "description", false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateString(req.Icon, "icon", 0, 10, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateCategory(req.Category, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateTags(req.Tags); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source, ok := h.cards.Get(req.CardID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}

	name := req.Name
	if name == "" {
		name = source.Title
	}

	size := source.Size
	tmpl := &types.Template{
		ID:          generateTemplateID(name),
		Name:        name,
		Description: req.Description,
		Icon:        req.Icon,
		Category:    req.Category,
		Version:     "1.0.0",
		Author:      "user",
		Type:        source.Type,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Services:    source.Services,
		Tags:        req.Tags,
		Payload:     source.Payload,
		Size:        &size,
	}

	if tmpl.Icon == "" {
		tmpl.Icon = "🃏"
	}
	if tmpl.Category == "" {
		tmpl.Category = "general"
	}

	if err := h.templates.Save(c.Request.Context(), tmpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.metrics != nil {
		h.metrics.SetRegistryTemplates(h.templates.Stats().TotalTemplates)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"template_id": tmpl.ID,
	})
}

// ListTemplates lists all templates in the registry
func (h *Handlers) ListTemplates(c *gin.Context) {
	categoryParam := c.Query("category")

	if categoryParam != "" {
		if err := utils.ValidateCategory(categoryParam, false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var category *string
	if categoryParam != "" {
		category = &categoryParam
	}

	// Metadata only, the payloads can be large
	metadata, err := h.templates.ListMetadata(category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": metadata,
		"stats":     h.templates.Stats(),
	})
}

// GetTemplate gets details of a specific template
func (h *Handlers) GetTemplate(c *gin.Context) {
	templateID := c.Param("id")

	if err := utils.ValidateID(templateID, "template_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl, err := h.templates.Load(c.Request.Context(), templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

// OpenFromTemplate spawns a card pre-seeded from a template
func (h *Handlers) OpenFromTemplate(c *gin.Context) {
	templateID := c.Param("id")

	if err := utils.ValidateID(templateID, "template_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl, err := h.templates.Load(c.Request.Context(), templateID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	payload := map[string]interface{}{"template_id": tmpl.ID}
	for k, v := range tmpl.Payload {
		payload[k] = v
	}

	opened, err := h.cards.Open(types.OpenCardRequest{
		Type:    tmpl.Type,
		Title:   tmpl.Name,
		Size:    tmpl.Size,
		Payload: payload,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.notify(gin.H{"type": "card_opened", "card": opened, "timestamp": time.Now().Unix()})

	c.JSON(http.StatusOK, gin.H{
		"card":        opened,
		"template_id": tmpl.ID,
	})
}

// DeleteTemplate removes a template from the registry
func (h *Handlers) DeleteTemplate(c *gin.Context) {
	templateID := c.Param("id")

	if err := utils.ValidateID(templateID, "template_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.templates.Delete(c.Request.Context(), templateID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.metrics != nil {
		h.metrics.SetRegistryTemplates(h.templates.Stats().TotalTemplates)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"template_id": templateID,
	})
}

// generateTemplateID creates a unique template ID from its name
func generateTemplateID(name string) string {
	return sanitizeID(name) + "-" + time.Now().Format("20060102")
}

func sanitizeID(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // to lowercase
		} else if r == ' ' || r == '_' {
			result.WriteRune('-')
		}
	}
	return result.String()
}
