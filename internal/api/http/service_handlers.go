package http

import (
	"net/http"

	"github.com/HobbyCoders/deck/internal/infrastructure/monitoring"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/HobbyCoders/deck/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// ListServices lists all registered service providers
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")

	if categoryStr != "" {
		if err := utils.ValidateCategory(categoryStr, false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.services.List(category)

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    h.services.Stats(),
	})
}

// DiscoverServices finds relevant services for an intent string
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req struct {
		Intent string `json:"intent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateString(req.Intent, "intent", 1, 500, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	services := h.services.Discover(req.Intent, 5)

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Intent,
		"services": services,
	})
}

// ExecuteService executes a service tool on behalf of a card
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateToolID(req.ToolID, "tool_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ctx *types.Context
	if req.CardID != nil {
		if err := utils.ValidateID(*req.CardID, "card_id", false); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, ok := h.cards.Get(*req.CardID); ok {
			ctx = &types.Context{CardID: req.CardID}
		}
	}

	var timer *monitoring.Timer
	if h.metrics != nil {
		timer = monitoring.NewTimer(h.metrics, serviceOf(req.ToolID), req.ToolID)
	}

	result, err := h.services.Execute(req.ToolID, req.Params, ctx)
	if timer != nil {
		if err != nil || (result != nil && !result.Success) {
			timer.Stop("error")
		} else {
			timer.Stop("success")
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// serviceOf extracts the provider ID from a dotted tool ID
func serviceOf(toolID string) string {
	for i := 0; i < len(toolID); i++ {
		if toolID[i] == '.' {
			return toolID[:i]
		}
	}
	return toolID
}
