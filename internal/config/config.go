package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// Config holds the whole application configuration, populated from environment variables
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	MinIO  MinIOConfig
	Report ReportConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigins []string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ReportConfig controls the background report snapshot
type ReportConfig struct {
	SnapshotCron string
	SnapshotTTL  time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	snapshotTTL, err := time.ParseDuration(getEnv("REPORT_SNAPSHOT_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_SNAPSHOT_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "DB Train API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", "*"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "dbtrain"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Report: ReportConfig{
			SnapshotCron: getEnv("REPORT_SNAPSHOT_CRON", "*/15 * * * *"),
			SnapshotTTL:  snapshotTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that must not keep their development defaults
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if getEnv("DB_PASSWORD", "") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.MinIO.SecretKey == "minioadmin" {
			return fmt.Errorf("MINIO_SECRET_KEY must be set in production")
		}
	}
	if c.Report.SnapshotTTL <= 0 {
		return fmt.Errorf("REPORT_SNAPSHOT_TTL must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnv is exported for the cmd entry points
func GetEnv(key, defaultValue string) string {
	return getEnv(key, defaultValue)
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping blank items
func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// AsynqOpt returns the connection options asynq clients, servers and schedulers share
func (r RedisConfig) AsynqOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     r.Host,
		Password: r.Password,
		DB:       r.DB,
	}
}
