package routes

import (
	"time"

	"locali/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		me := api.Group("/me")
		me.Use(hb.RequireAuth)
		me.GET("", hb.GetProfileHandler)
		me.PUT("", hb.UpdateProfileHandler)
		me.POST("/photo", hb.UpdatePhotoHandler)
		me.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterEventRoutes registers the catalogue, hosting, RSVP and suggestion endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		// Public reads; a valid token adds match scores and attendance.
		api.GET("", hb.OptionalAuth, hb.ListEventsHandler)
		api.GET("/featured", hb.FeaturedEventsHandler)
		api.GET("/recommended", hb.RequireAuth, hb.RecommendedEventsHandler)
		api.GET("/:id", hb.OptionalAuth, hb.GetEventHandler)

		protected := api.Group("")
		protected.Use(hb.RequireAuth)
		protected.POST("", hb.CreateEventHandler)
		protected.PUT("/:id", hb.UpdateEventHandler)
		protected.DELETE("/:id", hb.DeleteEventHandler)
		protected.POST("/:id/rsvp", hb.RSVPHandler)
		protected.DELETE("/:id/rsvp", hb.CancelRSVPHandler)
		protected.GET("/:id/attendees", hb.AttendeesHandler)
		protected.POST("/:id/image", hb.UploadEventImageHandler)
		protected.DELETE("/:id/image", hb.DeleteEventImageHandler)
		protected.GET("/:id/suggestions", hb.ListSuggestionsHandler)
		protected.POST("/:id/suggestions/:sid/apply", hb.ApplySuggestionHandler)
		protected.POST("/:id/suggestions/:sid/feedback", hb.SuggestionFeedbackHandler)
	}
}

// RegisterDialogueRoutes sets up the endpoints for the guided booking dialogue.
func RegisterDialogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	dialogueGroup := r.Group("/api/dialogue/sessions")
	{
		dialogueGroup.Use(hb.RequireAuth)
		dialogueGroup.POST("", hb.OpenDialogueHandler)
		dialogueGroup.GET("/:id", hb.GetDialogueHandler)
		dialogueGroup.POST("/:id/messages", hb.SubmitDialogueHandler)
		dialogueGroup.POST("/:id/reset", hb.ResetDialogueHandler)
		dialogueGroup.POST("/:id/finalize", hb.FinalizeDialogueHandler)
		dialogueGroup.DELETE("/:id", hb.CloseDialogueHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterDialogueRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
