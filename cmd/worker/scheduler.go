package main

import (
	"fmt"
	"log"

	"dbtrain-backend/internal/config"
	"dbtrain-backend/internal/infrastructure/queue"
)

// reportScheduler runs the periodic report snapshot enqueuer
type reportScheduler struct {
	*queue.Scheduler
	cron string
}

func setupScheduler(cfg *config.Config) (*reportScheduler, error) {
	scheduler := queue.NewScheduler(cfg.Redis.AsynqOpt(), cfg.Report)
	if err := scheduler.RegisterJobs(); err != nil {
		return nil, fmt.Errorf("register report jobs: %w", err)
	}

	s := &reportScheduler{Scheduler: scheduler, cron: cfg.Report.SnapshotCron}
	go func() {
		log.Printf("[Scheduler] Starting (report snapshot: %q)", s.cron)
		if err := s.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return s, nil
}

func (s *reportScheduler) Shutdown() {
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] Stopped")
}
