package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"dbtrain-backend/internal/config"
	reportService "dbtrain-backend/internal/domains/report/service"
	"dbtrain-backend/pkg/logger"
)

type Scheduler struct {
	scheduler    *asynq.Scheduler
	reportConfig config.ReportConfig
}

func NewScheduler(redis asynq.RedisConnOpt, reportConfig config.ReportConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:    scheduler,
		reportConfig: reportConfig,
	}
}

// RegisterJobs registers every periodic task
func (s *Scheduler) RegisterJobs() error {
	return s.registerReportSnapshotJob()
}

// ================================================
// Report snapshot (REPORT_SNAPSHOT_CRON, every 15 minutes by default)
// ================================================
func (s *Scheduler) registerReportSnapshotJob() error {
	task, err := reportService.NewSnapshotTask("scheduler", time.Now())
	if err != nil {
		return err
	}

	entryID, err := s.scheduler.Register(s.reportConfig.SnapshotCron, task, reportService.SnapshotTaskOptions()...)
	if err != nil {
		logger.Error("Failed to register ReportSnapshot job", err)
		return err
	}

	logger.Info("Registered ReportSnapshot job", map[string]interface{}{
		"cron":     s.reportConfig.SnapshotCron,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
