package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"locali/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct {
	calls int
	exp   time.Time
}

func (s *stubVerifier) VerifyToken(_ context.Context, token string) (string, time.Time, error) {
	s.calls++
	if token != "good" {
		return "", time.Time{}, errors.New("bad token")
	}
	return "u1", s.exp, nil
}

func newRouter(auth *Auth, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := auth.Required()
	if optional {
		mw = auth.Optional()
	}
	r.GET("/me", mw, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequiredAuthCachesVerifiedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	verifier := &stubVerifier{exp: time.Now().Add(time.Hour)}
	r := newRouter(&Auth{Verifier: verifier, Cache: client, Logger: zap.NewNop()}, false)

	w := get(r, "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	key := utils.AuthCachePrefix + utils.HashToken("good")
	assert.True(t, mr.Exists(key))
	assert.LessOrEqual(t, mr.TTL(key), utils.AuthCacheTTL)

	w = get(r, "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, verifier.calls)
}

func TestRequiredAuthRejects(t *testing.T) {
	r := newRouter(&Auth{Verifier: &stubVerifier{}, Logger: zap.NewNop()}, false)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer bad").Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	r := newRouter(&Auth{Verifier: &stubVerifier{}, Logger: zap.NewNop()}, true)

	w := get(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "Bearer bad")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "Bearer good")
	assert.Equal(t, "u1", w.Body.String())
}

func TestRateLimitPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(2, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("2.2.2.2"))
}
