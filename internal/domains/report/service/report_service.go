package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"dbtrain-backend/internal/domains/report/model"
	"dbtrain-backend/internal/domains/report/repository"
	"dbtrain-backend/internal/shared"
	"dbtrain-backend/pkg/cache"
)

const snapshotCacheKey = "report:snapshot"

type reportService struct {
	source      repository.SnapshotSource
	cache       cache.Cache
	queue       TaskEnqueuer
	snapshotTTL time.Duration
	now         func() time.Time
}

func NewReportService(
	source repository.SnapshotSource,
	cache cache.Cache,
	queue TaskEnqueuer,
	snapshotTTL time.Duration,
) ServiceInterface {
	return &reportService{
		source:      source,
		cache:       cache,
		queue:       queue,
		snapshotTTL: snapshotTTL,
		now:         time.Now,
	}
}

func (s *reportService) Build(ctx context.Context) (*model.Report, error) {
	report := &model.Report{}

	err := s.source.Read(ctx, func(r repository.Reader) error {
		var err error

		if report.Answer1, err = r.TopSelfEsteemUsernames(ctx); err != nil {
			return err
		}
		if report.Answer2, err = r.MostProlificAuthors(ctx); err != nil {
			return err
		}
		if report.Answer3, err = r.EntriesTagged(ctx, model.TaggedNames...); err != nil {
			return err
		}
		if report.Answer4, err = r.CountByGender(ctx, model.FemaleGender); err != nil {
			return err
		}
		if report.Answer5, err = r.RuleAgreement(ctx); err != nil {
			return err
		}
		if report.Answer6, err = r.ProfilesByStage(ctx, model.StageMin, model.StageMax); err != nil {
			return err
		}
		if report.Answer7, err = r.MaxAge(ctx); err != nil {
			return err
		}
		if report.Answer8, err = r.CountWithPhone(ctx); err != nil {
			return err
		}
		if report.Answer9, err = r.AuthorsYoungerThan(ctx, model.YoungAgeLimit); err != nil {
			return err
		}
		report.Answer10, err = r.EntryCountsPerAuthor(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	report.GeneratedAt = s.now().UTC()
	return report, nil
}

func (s *reportService) Snapshot(ctx context.Context) (*model.Report, error) {
	var report model.Report
	found, err := s.cache.Get(ctx, snapshotCacheKey, &report)
	if err != nil {
		return nil, fmt.Errorf("failed to read report snapshot: %w", err)
	}
	if !found {
		return nil, model.ErrSnapshotNotFound
	}
	return &report, nil
}

func (s *reportService) StoreSnapshot(ctx context.Context) (*model.Report, error) {
	report, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, snapshotCacheKey, report, s.snapshotTTL); err != nil {
		return nil, fmt.Errorf("failed to store report snapshot: %w", err)
	}

	log.Info().
		Time("generated_at", report.GeneratedAt).
		Int("authors", len(report.Answer10)).
		Msg("Report snapshot stored")
	return report, nil
}

func (s *reportService) RequestSnapshot(ctx context.Context) (string, error) {
	task, err := NewSnapshotTask("api", s.now())
	if err != nil {
		return "", err
	}

	info, err := s.queue.EnqueueContext(ctx, task, SnapshotTaskOptions()...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue report snapshot: %w", err)
	}

	log.Info().Str("task_id", info.ID).Msg("Report snapshot requested")
	return info.ID, nil
}

// NewSnapshotTask builds the report:snapshot task shared by the API and the scheduler
func NewSnapshotTask(trigger string, at time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.ReportSnapshotPayload{Trigger: trigger, RequestedAt: at.UTC()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(shared.TypeReportSnapshot, payload), nil
}

func SnapshotTaskOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(shared.QueueReport),
		asynq.MaxRetry(2),
		asynq.Timeout(2 * time.Minute),
	}
}
