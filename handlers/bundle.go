// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth middleware
	RequireAuth  gin.HandlerFunc
	OptionalAuth gin.HandlerFunc

	HealthHandler gin.HandlerFunc

	// User endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetProfileHandler       gin.HandlerFunc
	UpdateProfileHandler    gin.HandlerFunc
	UpdatePhotoHandler      gin.HandlerFunc
	UpdateFCMTokenHandler   gin.HandlerFunc

	// Event endpoints
	ListEventsHandler        gin.HandlerFunc
	FeaturedEventsHandler    gin.HandlerFunc
	RecommendedEventsHandler gin.HandlerFunc
	GetEventHandler          gin.HandlerFunc
	CreateEventHandler       gin.HandlerFunc
	UpdateEventHandler       gin.HandlerFunc
	DeleteEventHandler       gin.HandlerFunc
	RSVPHandler              gin.HandlerFunc
	CancelRSVPHandler        gin.HandlerFunc
	AttendeesHandler         gin.HandlerFunc
	UploadEventImageHandler  gin.HandlerFunc
	DeleteEventImageHandler  gin.HandlerFunc

	// Suggestion endpoints
	ListSuggestionsHandler    gin.HandlerFunc
	ApplySuggestionHandler    gin.HandlerFunc
	SuggestionFeedbackHandler gin.HandlerFunc

	// Dialogue endpoints
	OpenDialogueHandler     gin.HandlerFunc
	GetDialogueHandler      gin.HandlerFunc
	SubmitDialogueHandler   gin.HandlerFunc
	ResetDialogueHandler    gin.HandlerFunc
	FinalizeDialogueHandler gin.HandlerFunc
	CloseDialogueHandler    gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(requireAuth, optionalAuth gin.HandlerFunc, users *UserHandler, events *EventHandler, sugg *SuggestionHandler, dlg *DialogueHandler) *HandlerBundle {
	return &HandlerBundle{
		RequireAuth:  requireAuth,
		OptionalAuth: optionalAuth,

		HealthHandler: HealthHandler,

		RegisterUserHandler:     users.RegisterUserHandler,
		AuthenticateUserHandler: users.AuthenticateUserHandler,
		GetProfileHandler:       users.GetProfileHandler,
		UpdateProfileHandler:    users.UpdateProfileHandler,
		UpdatePhotoHandler:      users.UpdatePhotoHandler,
		UpdateFCMTokenHandler:   users.UpdateFCMTokenHandler,

		ListEventsHandler:        events.ListEventsHandler,
		FeaturedEventsHandler:    events.FeaturedEventsHandler,
		RecommendedEventsHandler: events.RecommendedEventsHandler,
		GetEventHandler:          events.GetEventHandler,
		CreateEventHandler:       events.CreateEventHandler,
		UpdateEventHandler:       events.UpdateEventHandler,
		DeleteEventHandler:       events.DeleteEventHandler,
		RSVPHandler:              events.RSVPHandler,
		CancelRSVPHandler:        events.CancelRSVPHandler,
		AttendeesHandler:         events.AttendeesHandler,
		UploadEventImageHandler:  events.UploadImageHandler,
		DeleteEventImageHandler:  events.DeleteImageHandler,

		ListSuggestionsHandler:    sugg.ListSuggestionsHandler,
		ApplySuggestionHandler:    sugg.ApplySuggestionHandler,
		SuggestionFeedbackHandler: sugg.SuggestionFeedbackHandler,

		OpenDialogueHandler:     dlg.OpenSessionHandler,
		GetDialogueHandler:      dlg.GetSessionHandler,
		SubmitDialogueHandler:   dlg.SubmitMessageHandler,
		ResetDialogueHandler:    dlg.ResetSessionHandler,
		FinalizeDialogueHandler: dlg.FinalizeSessionHandler,
		CloseDialogueHandler:    dlg.CloseSessionHandler,
	}
}
