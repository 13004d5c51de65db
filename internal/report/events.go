package report

import (
	"context"

	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/pkg/activity"
)

const producer = "activity.assemble_report"

// EventEmitter emits report assembly events. Emission is best-effort.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates a new EventEmitter with the provided base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitReportAssembled emits a report.assembled event.
func (e *EventEmitter) EmitReportAssembled(
	ctx context.Context,
	wfCtx activity.WorkflowContext,
	datasetDigest string,
	out *domain.Report,
) {
	meta := domain.EventMeta{
		WorkflowID:    wfCtx.WorkflowID,
		RunID:         wfCtx.RunID,
		DatasetDigest: datasetDigest,
		Producer:      producer,
	}

	event, err := domain.NewReportAssembledEvent(meta, out)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create ReportAssembled event", "error", err)
		return
	}

	e.base.EmitEventSafe(ctx, event.ToEnvelope(), "ReportAssembled")
}
