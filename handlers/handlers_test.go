package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"locali/database/repository/memory"
	"locali/middleware"
	"locali/models"
	"locali/services/dialogue"
	"locali/services/event"
	"locali/services/recommend"
	"locali/services/suggestions"
	"locali/services/user"
	"locali/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUserHeader = "X-Test-User"

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

// headerAuth stands in for token verification: the uid comes straight from a header.
func headerAuth(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetHeader(testUserHeader); uid != "" {
			c.Set(middleware.UserIDKey, uid)
		} else if required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		c.Next()
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := memory.NewStore()
	issuer, err := utils.NewTokenIssuer("test-secret")
	require.NoError(t, err)

	rec := &recommend.DefaultRecommendService{
		Events: store.Events(), Users: store.Users(), Cache: client, TTL: time.Minute, Logger: logger,
	}
	users := &user.DefaultUserService{
		Repo:      store.Users(),
		Identity:  &user.LocalIdentity{Credentials: store.Credentials(), Tokens: issuer, Lifetime: time.Hour},
		Recommend: rec,
		Logger:    logger,
	}
	events := &event.DefaultEventService{Repo: store.Events(), Users: store.Users(), Logger: logger}
	sugg := &suggestions.DefaultSuggestionService{Events: events, Logger: logger}
	manager := dialogue.NewManager(
		dialogue.NewRedisSessionStore(client, time.Hour),
		events,
		dialogue.Options{ReplyDelay: 0},
		time.Hour,
		logger,
	)

	hb := NewHandlerBundle(headerAuth(true), headerAuth(false),
		&UserHandler{UserService: users, Logger: logger},
		&EventHandler{Events: events, Recommend: rec, Users: users, Logger: logger},
		&SuggestionHandler{Suggestions: sugg},
		NewDialogueHandler(manager, logger),
	)

	r := gin.New()
	r.GET("/health", hb.HealthHandler)
	r.POST("/api/users/register", hb.RegisterUserHandler)
	r.POST("/api/users/login", hb.AuthenticateUserHandler)
	r.GET("/api/users/me", hb.RequireAuth, hb.GetProfileHandler)
	r.PUT("/api/users/me", hb.RequireAuth, hb.UpdateProfileHandler)
	r.GET("/api/events", hb.OptionalAuth, hb.ListEventsHandler)
	r.GET("/api/events/recommended", hb.RequireAuth, hb.RecommendedEventsHandler)
	r.GET("/api/events/:id", hb.OptionalAuth, hb.GetEventHandler)
	r.POST("/api/events", hb.RequireAuth, hb.CreateEventHandler)
	r.DELETE("/api/events/:id", hb.RequireAuth, hb.DeleteEventHandler)
	r.POST("/api/events/:id/rsvp", hb.RequireAuth, hb.RSVPHandler)
	r.GET("/api/events/:id/suggestions", hb.RequireAuth, hb.ListSuggestionsHandler)
	r.POST("/api/dialogue/sessions", hb.RequireAuth, hb.OpenDialogueHandler)
	r.GET("/api/dialogue/sessions/:id", hb.RequireAuth, hb.GetDialogueHandler)
	r.POST("/api/dialogue/sessions/:id/messages", hb.RequireAuth, hb.SubmitDialogueHandler)
	r.POST("/api/dialogue/sessions/:id/reset", hb.RequireAuth, hb.ResetDialogueHandler)
	r.POST("/api/dialogue/sessions/:id/finalize", hb.RequireAuth, hb.FinalizeDialogueHandler)
	r.DELETE("/api/dialogue/sessions/:id", hb.RequireAuth, hb.CloseDialogueHandler)

	return &testServer{router: r, store: store}
}

func (s *testServer) do(t *testing.T, method, path, uid string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set(testUserHeader, uid)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func (s *testServer) seedUser(t *testing.T, u models.User) {
	t.Helper()
	require.NoError(t, s.store.Users().Create(context.Background(), &u))
}

func TestDialogueBookingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, models.User{ID: "host", Name: "Ada"})

	w := s.do(t, http.MethodPost, "/api/dialogue/sessions", "host", map[string]string{"shell": "modal"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var view dialogue.View
	decode(t, w, &view)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, dialogue.Greeting, view.Messages[0].Content)
	base := "/api/dialogue/sessions/" + view.SessionID

	for _, text := range []string{"3/15/2024", "10:00am-11:30am", "50", "AI Ethics Roundtable", "yes"} {
		w = s.do(t, http.MethodPost, base+"/messages", "host", map[string]string{"text": text})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	decode(t, w, &view)
	assert.Equal(t, dialogue.StepDone, view.Draft.Step)
	assert.Equal(t, "10:00 AM-11:30 AM", *view.Draft.TimeSlot)

	// Other members cannot see the session.
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, base, "intruder", nil).Code)

	w = s.do(t, http.MethodPost, base+"/finalize", "host", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var res dialogue.FinalizeResult
	decode(t, w, &res)
	assert.Equal(t, "/dashboard/events", res.RedirectPath)

	ev, err := s.store.Events().GetByID(context.Background(), res.EventID)
	require.NoError(t, err)
	assert.Equal(t, "AI Ethics Roundtable", ev.Title)
	assert.Equal(t, 50, ev.Capacity)

	w = s.do(t, http.MethodPost, base+"/messages", "host", map[string]string{"text": "more"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, base, "host", nil).Code)
}

func TestDialogueErrorMapping(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/dialogue/sessions", "", nil).Code)
	w := s.do(t, http.MethodPost, "/api/dialogue/sessions", "u1", map[string]string{"shell": "sidebar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/dialogue/sessions", "u1", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var view dialogue.View
	decode(t, w, &view)
	base := "/api/dialogue/sessions/" + view.SessionID

	w = s.do(t, http.MethodPost, base+"/messages", "u1", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, base+"/finalize", "u1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// A rejected date is a normal turn, not an HTTP error.
	w = s.do(t, http.MethodPost, base+"/messages", "u1", map[string]string{"text": "tomorrow"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &view)
	assert.Equal(t, dialogue.StepDate, view.Draft.Step)
	assert.Len(t, view.Messages, 3)

	w = s.do(t, http.MethodPost, base+"/reset", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &view)
	assert.Len(t, view.Messages, 1)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/dialogue/sessions/nope", "u1", nil).Code)
}

func TestFinalizeWithoutProfileFails(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/dialogue/sessions", "ghost", map[string]string{"shell": "page"})
	require.Equal(t, http.StatusCreated, w.Code)
	var view dialogue.View
	decode(t, w, &view)
	base := "/api/dialogue/sessions/" + view.SessionID
	for _, text := range []string{"3/15/2024", "10:00am-11:30am", "50", "Meetup", "no"} {
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, base+"/messages", "ghost", map[string]string{"text": text}).Code)
	}

	w = s.do(t, http.MethodPost, base+"/finalize", "ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, base, "ghost", nil)
	decode(t, w, &view)
	assert.False(t, view.Finalized)
}

func TestUserRegisterLoginAndProfile(t *testing.T) {
	s := newTestServer(t)

	body := map[string]string{"email": "grace@uw.edu", "password": "secret1", "name": "Grace"}
	w := s.do(t, http.MethodPost, "/api/users/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u models.User
	decode(t, w, &u)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/users/register", "", body).Code)

	w = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"email": "grace@uw.edu", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"email": "grace@uw.edu", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var session models.AuthSession
	decode(t, w, &session)
	assert.Equal(t, u.ID, session.UserID)
	assert.NotEmpty(t, session.Token)

	w = s.do(t, http.MethodPut, "/api/users/me", u.ID, map[string]interface{}{"interests": []string{"NLP", "nlp"}})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &u)
	assert.Equal(t, []string{"NLP"}, u.Interests)
}

func TestEventsOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.seedUser(t, models.User{ID: "host", Name: "Ada"})
	s.seedUser(t, models.User{ID: "fan", Name: "Lin", Interests: []string{"NLP"}})

	input := map[string]interface{}{
		"title": "NLP Night", "date": "2026-05-01", "startTime": "6:00 PM", "endTime": "8:00 PM",
		"tags": []string{"NLP"}, "capacity": 1,
	}
	w := s.do(t, http.MethodPost, "/api/events", "host", input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ev models.Event
	decode(t, w, &ev)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/events", "host", map[string]string{"title": "x"}).Code)

	var listing struct {
		Events []models.ScoredEvent `json:"events"`
	}
	w = s.do(t, http.MethodGet, "/api/events?minMatch=50", "fan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	require.Len(t, listing.Events, 1)
	assert.Equal(t, 100, listing.Events[0].MatchScore)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/events?limit=-1", "", nil).Code)

	w = s.do(t, http.MethodGet, "/api/events/recommended", "fan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	assert.Len(t, listing.Events, 1)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/events/"+ev.ID+"/rsvp", "fan", nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/events/"+ev.ID+"/rsvp", "fan", nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/events/"+ev.ID+"/rsvp", "host", nil).Code)

	var detail struct {
		Attending bool `json:"attending"`
		IsHost    bool `json:"isHost"`
	}
	w = s.do(t, http.MethodGet, "/api/events/"+ev.ID, "fan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &detail)
	assert.True(t, detail.Attending)
	assert.False(t, detail.IsHost)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/events/"+ev.ID+"/suggestions", "fan", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/events/"+ev.ID+"/suggestions", "host", nil).Code)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/events/"+ev.ID, "fan", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/events/"+ev.ID, "host", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/events/"+ev.ID, "", nil).Code)
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Contains(t, []int{http.StatusOK, http.StatusServiceUnavailable}, w.Code)
	assert.Contains(t, w.Body.String(), "Locali")
}
