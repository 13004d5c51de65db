package report

import (
	"context"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/pkg/activity"
)

// Activities exposes report assembly as a Temporal activity.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates report activities with the provided base infrastructure.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// AssembleReport builds the nested report from the derived averages.
func (a *Activities) AssembleReport(
	ctx context.Context,
	input domain.AssembleReportInput,
) (*domain.Report, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("AssembleReport", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting AssembleReport activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"students", len(input.Students))

	out := Assemble(input.Courses, input.Students, &input.Averages)

	a.events.EmitReportAssembled(ctx, wfCtx, input.DatasetDigest, &out)

	return &out, nil
}

func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
