package aggregation

import (
	"context"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/pkg/activity"
)

// Activities exposes the aggregation engine as a Temporal activity.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates aggregation activities with the provided dependencies.
// The base activities provide common infrastructure for logging and event emission.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// ComputeAverages derives the course and total averages of a run.
// Callers must have checked course weights first.
func (a *Activities) ComputeAverages(
	ctx context.Context,
	input domain.ComputeAveragesInput,
) (*domain.Averages, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("ComputeAverages", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting ComputeAverages activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"marks", len(input.Marks))

	averages := ComputeAverages(input.Students, input.Tests, input.Marks)

	a.events.EmitAveragesComputed(ctx, wfCtx, input.DatasetDigest, &averages)

	activity.SafeLog(ctx, "ComputeAverages completed",
		"course_averages", len(averages.CourseAverages),
		"total_averages", len(averages.TotalAverages),
		"dropped_marks", averages.DroppedMarks)

	return &averages, nil
}

// Error helpers - wrap errors as Temporal application errors

func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
