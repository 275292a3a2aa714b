package middleware

import (
	"net/http"
	"strings"
	"time"

	"locali/services/user"
	"locali/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key holding the authenticated uid.
const UserIDKey = "userID"

// Auth resolves bearer tokens to uids. Verified tokens are cached in Redis by hash until
// they expire or AuthCacheTTL passes, whichever comes first.
type Auth struct {
	Verifier user.TokenVerifier
	Cache    *redis.Client
	Logger   *zap.Logger
}

// Required rejects requests without a valid bearer token.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		uid, ok := a.resolve(c, token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(UserIDKey, uid)
		c.Next()
	}
}

// Optional sets the uid when a valid token is present and lets anonymous requests through.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if uid, ok := a.resolve(c, token); ok {
				c.Set(UserIDKey, uid)
			}
		}
		c.Next()
	}
}

func (a *Auth) resolve(c *gin.Context, token string) (string, bool) {
	ctx := c.Request.Context()
	key := utils.AuthCachePrefix + utils.HashToken(token)

	if a.Cache != nil {
		uid, err := a.Cache.Get(ctx, key).Result()
		if err == nil && uid != "" {
			return uid, true
		}
		if err != nil && err != redis.Nil {
			a.Logger.Warn("auth cache read failed, verifying token directly", zap.Error(err))
		}
	}

	uid, exp, err := a.Verifier.VerifyToken(ctx, token)
	if err != nil {
		a.Logger.Debug("token rejected", zap.Error(err))
		return "", false
	}

	if a.Cache != nil {
		ttl := utils.AuthCacheTTL
		if !exp.IsZero() {
			if left := time.Until(exp); left < ttl {
				ttl = left
			}
		}
		if ttl > 0 {
			if err := a.Cache.Set(ctx, key, uid, ttl).Err(); err != nil {
				a.Logger.Warn("auth cache write failed", zap.Error(err))
			}
		}
	}
	return uid, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// CurrentUserID returns the uid set by Auth, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
