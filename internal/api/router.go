package api

import (
	"context"
	"net/http"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/config"
	"github.com/JNHNG0205/ai-content-workflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HealthCheck is a named dependency probe reported by /health
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, checks ...HealthCheck) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigin))

	// Handlers
	authHandler := NewAuthHandler(services, log)
	contentHandler := NewContentHandler(services)
	reviewHandler := NewReviewHandler(services)
	aiHandler := NewAIHandler(services, log)

	// Health check and metrics
	router.GET("/health", healthCheck(checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/stats", statsHandler(services))

	requireAuth := authMiddleware(services.Auth)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
			auth.POST("/logout", requireAuth, authHandler.Logout)
		}

		content := api.Group("/content", requireAuth)
		{
			content.POST("", contentHandler.Create)
			content.GET("/drafts", contentHandler.ListByStatus("DRAFT"))
			content.GET("/submitted", contentHandler.ListByStatus("SUBMITTED"))
			content.GET("/rejected", contentHandler.ListByStatus("REJECTED"))
			content.GET("/approved", contentHandler.ListByStatus("APPROVED"))
			content.GET("/:contentId", contentHandler.Get)
			content.PUT("/:contentId", contentHandler.Update)
			content.POST("/:contentId/submit", contentHandler.Submit)
			content.PUT("/:contentId/revert", contentHandler.Revert)
		}

		review := api.Group("/review", requireAuth)
		{
			review.GET("/pending", reviewHandler.Pending)
			review.GET("/reviewed", reviewHandler.Reviewed)
			review.POST("/:contentId/assign", reviewHandler.Assign)
			review.POST("/:contentId/approve", reviewHandler.Approve)
			review.POST("/:contentId/reject", reviewHandler.Reject)
		}

		aiGroup := api.Group("/ai", requireAuth)
		if cfg.RateLimit.Enabled {
			aiGroup.Use(newRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware("ai"))
		}
		{
			aiGroup.POST("/generate", aiHandler.Generate)
			aiGroup.POST("/refine", aiHandler.Refine)
		}
	}

	return router
}

// healthCheck returns the health status, degraded when a dependency fails
func healthCheck(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := gin.H{}
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				deps[hc.Name] = err.Error()
				continue
			}
			deps[hc.Name] = "ok"
		}

		health := "healthy"
		if status != http.StatusOK {
			health = "degraded"
		}
		c.JSON(status, gin.H{
			"status":       health,
			"timestamp":    time.Now().Format(time.RFC3339),
			"service":      "content-workflow-api",
			"dependencies": deps,
		})
	}
}

// statsHandler returns content counts per status
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Workflow.Counts(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"content":   counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  "internal",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		if who, ok := identityFrom(c); ok {
			event = event.Str("user_id", who.UserID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+sessionHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
