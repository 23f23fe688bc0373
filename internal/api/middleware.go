package api

import (
	"net/http"
	"strings"
	"sync"

	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/metrics"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	sessionHeader = "X-Session-Id"
	identityKey   = "identity"
	tokenKey      = "session_token"
)

// sessionToken reads the opaque token from X-Session-Id or a Bearer header
func sessionToken(c *gin.Context) string {
	if t := strings.TrimSpace(c.GetHeader(sessionHeader)); t != "" {
		return t
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// authMiddleware resolves the session token and stores the caller identity
func authMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			writeError(c, apperr.Unauthenticated("Authentication required"))
			c.Abort()
			return
		}

		who, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, who)
		c.Set(tokenKey, token)
		c.Next()
	}
}

func identityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	who, ok := v.(models.Identity)
	return who, ok
}

// mustIdentity returns the caller; routes using it are behind authMiddleware
func mustIdentity(c *gin.Context) models.Identity {
	who, _ := identityFrom(c)
	return who
}

// rateLimiter is a per-caller token bucket
type rateLimiter struct {
	rps     rate.Limit
	burst   int
	buckets sync.Map // map[string]*rate.Limiter
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	return &rateLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *rateLimiter) get(key string) *rate.Limiter {
	if v, ok := l.buckets.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := l.buckets.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return v.(*rate.Limiter)
}

// Middleware limits requests per authenticated user, falling back to client IP
func (l *rateLimiter) Middleware(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if who, ok := identityFrom(c); ok && who.UserID != "" {
			key = "user:" + who.UserID
		}

		if !l.get(key).Allow() {
			metrics.RateLimitRejected.WithLabelValues(name).Inc()
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
				"code":  "rate_limited",
			})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues(name).Inc()
		c.Next()
	}
}
