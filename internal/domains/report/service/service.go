package service

import (
	"context"

	"github.com/hibiken/asynq"

	"dbtrain-backend/internal/domains/report/model"
)

// ServiceInterface - report computation and snapshots
type ServiceInterface interface {
	// Build computes all ten answers from one read-only snapshot
	Build(ctx context.Context) (*model.Report, error)
	// Snapshot returns the last stored report, ErrSnapshotNotFound when none
	Snapshot(ctx context.Context) (*model.Report, error)
	// StoreSnapshot builds a fresh report and stores it as the snapshot
	StoreSnapshot(ctx context.Context) (*model.Report, error)
	// RequestSnapshot enqueues a background snapshot and returns the task id
	RequestSnapshot(ctx context.Context) (string, error)
}

// TaskEnqueuer is satisfied by *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
