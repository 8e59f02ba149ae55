package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"dbtrain-backend/internal/config"
	infraCache "dbtrain-backend/internal/infrastructure/cache"
	"dbtrain-backend/internal/infrastructure/database"
	"dbtrain-backend/internal/infrastructure/storage"
	"dbtrain-backend/pkg/cache"

	authorHandler "dbtrain-backend/internal/domains/author/handler"
	authorRepo "dbtrain-backend/internal/domains/author/repository"
	authorService "dbtrain-backend/internal/domains/author/service"
	entryHandler "dbtrain-backend/internal/domains/entry/handler"
	entryRepo "dbtrain-backend/internal/domains/entry/repository"
	entryService "dbtrain-backend/internal/domains/entry/service"
	profileHandler "dbtrain-backend/internal/domains/profile/handler"
	profileRepo "dbtrain-backend/internal/domains/profile/repository"
	profileService "dbtrain-backend/internal/domains/profile/service"
	reportHandler "dbtrain-backend/internal/domains/report/handler"
	reportRepo "dbtrain-backend/internal/domains/report/repository"
	reportService "dbtrain-backend/internal/domains/report/service"
	tagHandler "dbtrain-backend/internal/domains/tag/handler"
	tagRepo "dbtrain-backend/internal/domains/tag/repository"
	tagService "dbtrain-backend/internal/domains/tag/service"
)

// Container holds the dependency graph shared by cmd/api and cmd/worker.
// Initialization order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	AsynqClient    *asynq.Client

	// Repositories
	AuthorRepo     authorRepo.RepositoryInterface
	ProfileRepo    profileRepo.RepositoryInterface
	EntryRepo      entryRepo.RepositoryInterface
	TagRepo        tagRepo.RepositoryInterface
	ReportSnapshot reportRepo.SnapshotSource

	// Services
	AuthorService  authorService.ServiceInterface
	ProfileService profileService.ServiceInterface
	EntryService   entryService.ServiceInterface
	TagService     tagService.ServiceInterface
	ReportService  reportService.ServiceInterface

	// Handlers
	AuthorHandler  *authorHandler.AuthorHandler
	ProfileHandler *profileHandler.ProfileHandler
	EntryHandler   *entryHandler.EntryHandler
	TagHandler     *tagHandler.TagHandler
	ReportHandler  *reportHandler.ReportHandler
}

func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// the API still serves uncached reads while Redis is down
		log.Printf("[REDIS] Connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = minioStorage
	c.ImageProcessor = storage.NewImageProcessor()

	c.AsynqClient = asynq.NewClient(c.Config.Redis.AsynqOpt())

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.ProfileRepo = profileRepo.NewPostgresRepository(pool)
	c.EntryRepo = entryRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.ReportSnapshot = reportRepo.NewPostgresSnapshotSource(pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Storage, c.ImageProcessor)
	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, c.AuthorRepo)
	c.EntryService = entryService.NewEntryService(c.EntryRepo, c.AuthorRepo)
	c.TagService = tagService.NewTagService(c.TagRepo)
	c.ReportService = reportService.NewReportService(
		c.ReportSnapshot,
		c.Cache,
		c.AsynqClient,
		c.Config.Report.SnapshotTTL,
	)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.EntryHandler = entryHandler.NewEntryHandler(c.EntryService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.ReportHandler = reportHandler.NewReportHandler(c.ReportService)
}

// Cleanup releases every connection the container opened; safe on a partial container
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[ASYNQ] Failed to close client: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[REDIS] Failed to close: %v", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[DATABASE] Failed to close: %v", err)
		}
	}

	log.Println("[CONTAINER] Cleanup completed")
}
