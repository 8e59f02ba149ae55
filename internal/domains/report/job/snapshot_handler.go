package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"dbtrain-backend/internal/domains/report/service"
	"dbtrain-backend/internal/shared"
)

// SnapshotHandler recomputes the report and stores it as the current snapshot
type SnapshotHandler struct {
	reportService service.ServiceInterface
}

func NewSnapshotHandler(reportService service.ServiceInterface) *SnapshotHandler {
	return &SnapshotHandler{reportService: reportService}
}

func (h *SnapshotHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReportSnapshotPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ReportSnapshot payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("trigger", payload.Trigger).
		Time("requested_at", payload.RequestedAt).
		Msg("Building report snapshot")

	if _, err := h.reportService.StoreSnapshot(ctx); err != nil {
		log.Error().Err(err).Str("trigger", payload.Trigger).Msg("Failed to store report snapshot")
		return fmt.Errorf("store snapshot: %w", err)
	}

	return nil
}
