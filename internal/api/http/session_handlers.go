package http

import (
	"net/http"

	"github.com/HobbyCoders/deck/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// SaveSession saves the current deck state
func (h *Handlers) SaveSession(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateName(req.Name, "name"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDescription(req.Description, "description", false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Save(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.metrics != nil {
		h.metrics.IncSessionsSaved()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session.ToMetadata(),
	})
}

// SaveDefaultSession saves a session with the default name
func (h *Handlers) SaveDefaultSession(c *gin.Context) {
	session, err := h.sessions.SaveDefault(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.metrics != nil {
		h.metrics.IncSessionsSaved()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session.ToMetadata(),
	})
}

// ListSessions lists all saved sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions, err := h.sessions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"stats":    h.sessions.Stats(),
	})
}

// GetSession gets details of a specific session
func (h *Handlers) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	if err := utils.ValidateID(sessionID, "session_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Load(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// RestoreSession replaces the current deck with a saved session
func (h *Handlers) RestoreSession(c *gin.Context) {
	sessionID := c.Param("id")

	if err := utils.ValidateID(sessionID, "session_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.Restore(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.metrics != nil {
		h.metrics.IncSessionsRestored()
	}

	h.notify(gin.H{
		"type":   "deck_restored",
		"cards":  h.cards.List(),
		"layout": h.deck.Layout(),
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cards":   h.cards.List(),
		"layout":  h.deck.Layout(),
	})
}

// DeleteSession deletes a saved session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")

	if err := utils.ValidateID(sessionID, "session_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
	})
}
