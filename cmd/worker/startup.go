package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dbtrain-backend/pkg/container"
)

const healthAddr = ":9999"

type healthCheck struct {
	name string
	fn   func(context.Context) error
}

// startServices runs the startup checks and exposes the worker's health endpoints
func startServices(c *container.Container) error {
	log.Println("[Startup] DB Train worker starting...")

	checks := []healthCheck{
		{"Redis Connection", c.Cache.Ping},
		{"PostgreSQL Connection", c.DB.HealthCheck},
	}

	if err := runChecks(checks); err != nil {
		return err
	}

	go startHealthCheckServer(healthRouter())
	return nil
}

func runChecks(checks []healthCheck) error {
	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()

		if err != nil {
			log.Printf("[Startup] %s: %v", check.name, err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("[Startup] %s: OK", check.name)
	}
	return nil
}

func healthRouter() *gin.Engine {
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "dbtrain-worker"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})
	return router
}

func startHealthCheckServer(handler http.Handler) {
	srv := &http.Server{
		Addr:              healthAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("[Health] Starting health check server on %s", healthAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("[Health] Failed to start: %v", err)
	}
}
