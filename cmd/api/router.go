package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dbtrain-backend/internal/shared/middleware"
	"dbtrain-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	metrics := middleware.NewHTTPMetrics(c.Config.App.Name)

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
		metrics.Middleware(),
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c.Config.App.Version, map[string]func(context.Context) error{
			"database": c.DB.HealthCheck,
			"cache":    c.Cache.Ping,
		}))

		setupAuthorRoutes(v1, c)
		setupEntryRoutes(v1, c)
		setupTagRoutes(v1, c)
		setupReportRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTHOR ROUTES (with profile and entries nested under the author)
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/by-username/:username", c.AuthorHandler.GetByUsername)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PATCH("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
		authors.POST("/:id/image", c.AuthorHandler.UploadImage)

		authors.POST("/:id/profile", c.ProfileHandler.Create)
		authors.GET("/:id/profile", c.ProfileHandler.Get)
		authors.PATCH("/:id/profile", c.ProfileHandler.UpdateStage)

		authors.POST("/:id/entries", c.EntryHandler.Create)
		authors.GET("/:id/entries", c.EntryHandler.ListByAuthor)
	}
}

// ========================================
// ENTRY ROUTES
// ========================================
func setupEntryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	entries := v1.Group("/entries")
	{
		entries.GET("/:id", c.EntryHandler.GetByID)
		entries.DELETE("/:id", c.EntryHandler.Delete)
		entries.POST("/:id/tags", c.EntryHandler.AttachTags)
		entries.DELETE("/:id/tags/:tagId", c.EntryHandler.DetachTag)
	}
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tags := v1.Group("/tags")
	{
		tags.POST("", c.TagHandler.Create)
		tags.GET("", c.TagHandler.List)
		tags.DELETE("/:id", c.TagHandler.Delete)
	}
}

// ========================================
// REPORT ROUTES
// ========================================
func setupReportRoutes(v1 *gin.RouterGroup, c *container.Container) {
	report := v1.Group("/report")
	{
		report.GET("", c.ReportHandler.Get)
		report.GET("/snapshot", c.ReportHandler.GetSnapshot)
		report.POST("/snapshot", c.ReportHandler.RequestSnapshot)
		report.GET("/export", c.ReportHandler.Export)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(version string, checks map[string]func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		statusCode := http.StatusOK
		components := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				components[name] = gin.H{"status": "down", "error": err.Error()}
				statusCode = http.StatusServiceUnavailable
				continue
			}
			components[name] = gin.H{"status": "ok"}
		}

		status := "ok"
		if statusCode != http.StatusOK {
			status = "degraded"
		}

		c.JSON(statusCode, gin.H{
			"status":     status,
			"version":    version,
			"time":       time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}
