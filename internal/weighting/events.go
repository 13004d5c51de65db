package weighting

import (
	"context"

	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/pkg/activity"
)

const producer = "activity.validate_weights"

// EventEmitter emits weighting events. Emission is best-effort.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates a new EventEmitter with the provided base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitWeightsRejected emits a report.weights_rejected event listing the
// offending courses.
func (e *EventEmitter) EmitWeightsRejected(
	ctx context.Context,
	wfCtx activity.WorkflowContext,
	datasetDigest string,
	violations []domain.CourseWeightSum,
) {
	meta := domain.EventMeta{
		WorkflowID:    wfCtx.WorkflowID,
		RunID:         wfCtx.RunID,
		DatasetDigest: datasetDigest,
		Producer:      producer,
	}

	event, err := domain.NewWeightsRejectedEvent(meta, violations)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create WeightsRejected event", "error", err)
		return
	}

	envelope := event.ToEnvelope()
	e.base.EmitEventSafe(ctx, envelope, "WeightsRejected")
}
