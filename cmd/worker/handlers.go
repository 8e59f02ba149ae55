package main

import (
	"github.com/hibiken/asynq"

	reportJob "dbtrain-backend/internal/domains/report/job"
	"dbtrain-backend/internal/shared"
	"dbtrain-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	reportSnapshot *reportJob.SnapshotHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reportSnapshot: reportJob.NewSnapshotHandler(c.ReportService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeReportSnapshot, h.reportSnapshot.ProcessTask)
}
