package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"dbtrain-backend/internal/config"
	"dbtrain-backend/internal/shared"
)

// asynqServer wraps asynq.Server with logging around shutdown
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *config.Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		cfg.Redis.AsynqOpt(),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueReport:  10,
				shared.QueueDefault: 5,
			},
			Concurrency: 4,
			Logger:      &asynqLogger{log: zlog.Logger.With().Str("component", "asynq").Logger()},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				zlog.Error().
					Err(err).
					Str("task_type", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("Task failed")
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to asynq's ShutdownTimeout
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] Stopped")
}

// asynqLogger routes asynq's internal logs through zerolog
type asynqLogger struct {
	log zerolog.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(sprint(args)) }
func (l *asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(sprint(args)) }
func (l *asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(sprint(args)) }
func (l *asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(sprint(args)) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(sprint(args)) }

func sprint(args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintln(args...))
}
