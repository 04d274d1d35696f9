package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/auth"
	"github.com/radio-cms-api/internal/config"
	"github.com/radio-cms-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, sessions *auth.Manager, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, cfg, log)
	libraryHandler := NewLibraryHandler(services, cfg, log)
	taxonomyHandler := NewTaxonomyHandler(services, log)
	analyticsHandler := NewAnalyticsHandler(services, log)
	authHandler := NewAuthHandler(sessions, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	v1.Use(adminContext(sessions))
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/logout", authHandler.Logout)

		// Public content
		v1.GET("/articles", articleHandler.List)
		v1.GET("/articles/:id", articleHandler.Get)
		v1.GET("/articles/:id/related", articleHandler.Related)
		v1.GET("/episodes/:slug", articleHandler.GetBySlug)
		v1.GET("/latest-articles", articleHandler.Latest)
		v1.GET("/library-items", libraryHandler.List)

		// Public taxonomy reads
		v1.GET("/guests", taxonomyHandler.ListGuests)
		v1.GET("/navigators", taxonomyHandler.ListNavigators)
		v1.GET("/tags", taxonomyHandler.ListTags)

		// Pageview tracking fires from the public article page
		v1.POST("/analytics/track", analyticsHandler.Track)

		// Admin surface
		admin := v1.Group("", requireAdmin())
		{
			admin.GET("/admin/articles", articleHandler.AdminList)
			admin.POST("/articles", articleHandler.Create)
			admin.PUT("/articles/:id", articleHandler.Update)
			admin.DELETE("/articles/:id", articleHandler.Delete)

			admin.POST("/guests", taxonomyHandler.CreateGuest)
			admin.PUT("/guests/:id", taxonomyHandler.UpdatePerson)
			admin.DELETE("/guests/:id", taxonomyHandler.DeletePerson)
			admin.POST("/navigators", taxonomyHandler.CreateNavigator)
			admin.PUT("/navigators/:id", taxonomyHandler.UpdatePerson)
			admin.DELETE("/navigators/:id", taxonomyHandler.DeletePerson)
			admin.POST("/tags", taxonomyHandler.CreateTag)
			admin.PUT("/tags/:id", taxonomyHandler.UpdateTag)
			admin.DELETE("/tags/:id", taxonomyHandler.DeleteTag)

			admin.GET("/analytics", analyticsHandler.Summary)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "radio-cms-api",
	})
}

// metricsHandler returns entity counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		articles, _ := services.Content.Count(ctx)
		persons, _ := services.Taxonomy.CountPersons(ctx)
		tags, _ := services.Taxonomy.CountTags(ctx)
		views, _ := services.Analytics.ViewCount(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"articles":   articles,
				"persons":    persons,
				"tags":       tags,
				"page_views": views,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// ctxKeyAdmin marks requests carrying a live admin session. Public
// handlers read it to widen draft visibility; requireAdmin enforces it.
const ctxKeyAdmin = "admin"

// adminContext resolves the bearer token, if any, into the admin flag
func adminContext(sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if sessions.Valid(token) {
			c.Set(ctxKeyAdmin, true)
		}
		c.Next()
	}
}

// requireAdmin rejects requests without a live admin session token
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if admin, ok := c.Get(ctxKeyAdmin); !ok || admin != true {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin session required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
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
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
