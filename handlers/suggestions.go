package handlers

import (
	"net/http"

	"locali/services/suggestions"

	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	Suggestions suggestions.SuggestionService
}

// ListSuggestionsHandler handles GET /api/events/:id/suggestions.
func (h *SuggestionHandler) ListSuggestionsHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.Suggestions.Generate(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": list})
}

// ApplySuggestionHandler handles POST /api/events/:id/suggestions/:sid/apply.
func (h *SuggestionHandler) ApplySuggestionHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	s, err := h.Suggestions.Apply(c.Request.Context(), uid, c.Param("id"), c.Param("sid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// SuggestionFeedbackHandler handles POST /api/events/:id/suggestions/:sid/feedback.
func (h *SuggestionHandler) SuggestionFeedbackHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var input struct {
		Helpful *bool `json:"helpful"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Helpful == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "helpful is required"})
		return
	}
	if err := h.Suggestions.Feedback(c.Request.Context(), uid, c.Param("id"), c.Param("sid"), *input.Helpful); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback recorded"})
}
