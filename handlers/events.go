package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"locali/middleware"
	"locali/models"
	"locali/services/event"
	"locali/services/recommend"
	"locali/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventHandler serves the event catalogue, hosting and RSVP endpoints.
type EventHandler struct {
	Events    event.EventService
	Recommend recommend.RecommendService
	Users     user.UserService
	Logger    *zap.Logger
}

// ListEventsHandler handles GET /api/events.
// Query: featured, tags (comma separated), q, upcomingDays, minMatch, limit.
func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	filter := models.EventFilter{
		Featured: c.Query("featured") == "true",
		Search:   c.Query("q"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	var ok bool
	if filter.UpcomingDays, ok = intQuery(c, "upcomingDays"); !ok {
		return
	}
	if filter.MatchThreshold, ok = intQuery(c, "minMatch"); !ok {
		return
	}
	if filter.Limit, ok = intQuery(c, "limit"); !ok {
		return
	}

	// Signed-in callers get match scores against their interests.
	if uid := middleware.CurrentUserID(c); uid != "" {
		if profile, err := h.Users.Profile(c.Request.Context(), uid); err == nil {
			filter.Interests = profile.Interests
		} else {
			h.Logger.Debug("no profile for match scoring", zap.String("userID", uid), zap.Error(err))
		}
	}

	events, err := h.Events.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// FeaturedEventsHandler handles GET /api/events/featured.
func (h *EventHandler) FeaturedEventsHandler(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	events, err := h.Events.Featured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// RecommendedEventsHandler handles GET /api/events/recommended.
func (h *EventHandler) RecommendedEventsHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	events, err := h.Recommend.Recommend(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEventHandler handles GET /api/events/:id. Signed-in callers also learn whether they are attending.
func (h *EventHandler) GetEventHandler(c *gin.Context) {
	ev, err := h.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"event": ev}
	if uid := middleware.CurrentUserID(c); uid != "" {
		attending, err := h.Events.IsAttending(c.Request.Context(), uid, ev.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["attending"] = attending
		resp["isHost"] = ev.HostID == uid
	}
	c.JSON(http.StatusOK, resp)
}

// CreateEventHandler handles POST /api/events.
func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	ev, err := h.Events.Create(c.Request.Context(), uid, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

// UpdateEventHandler handles PUT /api/events/:id.
func (h *EventHandler) UpdateEventHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	ev, err := h.Events.Update(c.Request.Context(), uid, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// DeleteEventHandler handles DELETE /api/events/:id.
func (h *EventHandler) DeleteEventHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Events.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// RSVPHandler handles POST /api/events/:id/rsvp.
func (h *EventHandler) RSVPHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	ev, err := h.Events.RSVP(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": ev, "attending": true})
}

// CancelRSVPHandler handles DELETE /api/events/:id/rsvp.
func (h *EventHandler) CancelRSVPHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	ev, err := h.Events.CancelRSVP(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": ev, "attending": false})
}

// AttendeesHandler handles GET /api/events/:id/attendees.
func (h *EventHandler) AttendeesHandler(c *gin.Context) {
	attendees, err := h.Events.Attendees(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendees": attendees})
}

// UploadImageHandler handles POST /api/events/:id/image (multipart field "file").
func (h *EventHandler) UploadImageHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": err.Error()})
		return
	}
	defer f.Close()

	url, err := h.Events.UploadImage(c.Request.Context(), uid, c.Param("id"), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageURL": url})
}

// DeleteImageHandler handles DELETE /api/events/:id/image.
func (h *EventHandler) DeleteImageHandler(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Events.DeleteImage(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// intQuery reads an optional non-negative integer query parameter, writing a 400 when malformed.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return n, true
}
