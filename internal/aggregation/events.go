package aggregation

import (
	"context"

	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/pkg/activity"
)

const producer = "activity.compute_averages"

// EventEmitter handles event emission for the aggregation stage.
// Emission is best-effort; failures are logged without affecting the activity.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates a new EventEmitter with the provided base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitAveragesComputed emits a report.averages_computed event.
func (e *EventEmitter) EmitAveragesComputed(
	ctx context.Context,
	wfCtx activity.WorkflowContext,
	datasetDigest string,
	averages *domain.Averages,
) {
	meta := domain.EventMeta{
		WorkflowID:    wfCtx.WorkflowID,
		RunID:         wfCtx.RunID,
		DatasetDigest: datasetDigest,
		Producer:      producer,
	}

	event, err := domain.NewAveragesComputedEvent(meta, averages)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create AveragesComputed event", "error", err)
		return
	}

	e.base.EmitEventSafe(ctx, event.ToEnvelope(), "AveragesComputed")
}
