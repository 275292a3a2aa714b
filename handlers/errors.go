package handlers

import (
	"errors"
	"net/http"

	"locali/database/repository"
	"locali/middleware"
	"locali/services/dialogue"
	"locali/services/event"
	"locali/services/storage"
	"locali/services/suggestions"
	"locali/services/user"
	"locali/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	var rejected *dialogue.ValidationRejected
	switch {
	case errors.As(err, &rejected),
		errors.Is(err, dialogue.ErrEmptyInput),
		errors.Is(err, dialogue.ErrUnknownShell),
		errors.Is(err, event.ErrInvalid),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, storage.ErrNotImage),
		errors.Is(err, storage.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, event.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, dialogue.ErrSessionNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, event.ErrNoProfile),
		errors.Is(err, suggestions.ErrUnknownSuggestion):
		return http.StatusNotFound
	case errors.Is(err, dialogue.ErrReplyPending),
		errors.Is(err, dialogue.ErrSessionReset),
		errors.Is(err, dialogue.ErrBookingIncomplete),
		errors.Is(err, dialogue.ErrAlreadyFinalized),
		errors.Is(err, dialogue.ErrFinalizeInProgress),
		errors.Is(err, repository.ErrAlreadyAttending),
		errors.Is(err, repository.ErrNotAttending),
		errors.Is(err, repository.ErrEventFull),
		errors.Is(err, user.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, dialogue.ErrCreateEvent):
		return http.StatusBadGateway
	case errors.Is(err, event.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped status. Internal errors hide their detail from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, status, "Internal Server Error", "")
		return
	}
	utils.JSONError(c, status, err.Error(), "")
}

// currentUser returns the authenticated uid, writing a 401 when absent.
func currentUser(c *gin.Context) (string, bool) {
	uid := middleware.CurrentUserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return uid, true
}
