package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"dbtrain-backend/internal/config"
	"dbtrain-backend/pkg/logger"
)

func main() {
	// .env is for local development; deployments use real environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("[ENV] No .env file found, using system environment variables")
	}

	env := config.GetEnv("APP_ENV", "development")
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Init(env, config.GetEnv("LOG_LEVEL", "info"))

	log.Printf("[ENV] Environment: %s", env)

	Serve()
}
