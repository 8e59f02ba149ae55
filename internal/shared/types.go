package shared

import "time"

// Background task types
const (
	TypeReportSnapshot = "report:snapshot"
)

// Queues served by the worker, with their asynq priorities
const (
	QueueReport  = "report"
	QueueDefault = "default"
)

// ReportSnapshotPayload is the body of a report:snapshot task
type ReportSnapshotPayload struct {
	Trigger     string    `json:"trigger"` // "api" or "scheduler"
	RequestedAt time.Time `json:"requested_at"`
}
