package weighting

import (
	"context"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/pkg/activity"
)

// Activities exposes the course weight check as a Temporal activity.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates weighting activities with the provided base infrastructure.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// ValidateWeights checks the course weight invariant. An invalid dataset is
// not an activity failure: the output reports Valid=false with the offending
// courses, and the workflow turns that into the error result.
func (a *Activities) ValidateWeights(
	ctx context.Context,
	input domain.ValidateWeightsInput,
) (*domain.ValidateWeightsOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("ValidateWeights", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting ValidateWeights activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"tests", len(input.Tests))

	violations := Violations(input.Tests)
	if len(violations) > 0 {
		a.events.EmitWeightsRejected(ctx, wfCtx, input.DatasetDigest, violations)
		activity.SafeLog(ctx, "Course weights rejected", "violations", len(violations))
		return &domain.ValidateWeightsOutput{Valid: false, Violations: violations}, nil
	}

	return &domain.ValidateWeightsOutput{Valid: true}, nil
}

func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
