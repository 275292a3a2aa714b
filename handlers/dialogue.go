package handlers

import (
	"net/http"

	"locali/services/dialogue"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DialogueHandler serves the guided booking conversation.
type DialogueHandler struct {
	Manager *dialogue.Manager
	Logger  *zap.Logger
}

func NewDialogueHandler(m *dialogue.Manager, logger *zap.Logger) *DialogueHandler {
	return &DialogueHandler{Manager: m, Logger: logger}
}

// OpenSessionHandler handles POST /api/dialogue/sessions.
func (h *DialogueHandler) OpenSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var input struct {
		Shell string `json:"shell"`
	}
	// The body is optional; an empty one opens the modal.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}
	view, err := h.Manager.Open(c.Request.Context(), uid, input.Shell)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSessionHandler handles GET /api/dialogue/sessions/:id.
func (h *DialogueHandler) GetSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.Manager.View(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitMessageHandler handles POST /api/dialogue/sessions/:id/messages.
// The call returns once the assistant reply has been appended.
func (h *DialogueHandler) SubmitMessageHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	view, err := h.Manager.Submit(c.Request.Context(), c.Param("id"), uid, input.Text)
	if err != nil {
		h.Logger.Debug("dialogue submit rejected", zap.String("sessionID", c.Param("id")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ResetSessionHandler handles POST /api/dialogue/sessions/:id/reset.
func (h *DialogueHandler) ResetSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.Manager.Reset(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// FinalizeSessionHandler handles POST /api/dialogue/sessions/:id/finalize.
func (h *DialogueHandler) FinalizeSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.Manager.Finalize(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		h.Logger.Warn("dialogue finalize failed", zap.String("sessionID", c.Param("id")), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CloseSessionHandler handles DELETE /api/dialogue/sessions/:id.
func (h *DialogueHandler) CloseSessionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Manager.Close(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
