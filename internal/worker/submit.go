package worker

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/ahrav/go-gradebook/internal/config"
	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/internal/workflow"
)

// WorkflowIDPrefix prefixes the ids of report workflows.
const WorkflowIDPrefix = "gradebook-report-"

// Submit starts ReportWorkflow for req on cfg.TaskQueue and waits for its result.
// runID distinguishes submissions of the same dataset.
func Submit(
	ctx context.Context,
	c client.Client,
	cfg config.TemporalConfig,
	req domain.ReportRequest,
	runID string,
) (domain.Result, error) {
	if err := req.Validate(); err != nil {
		return domain.Result{}, fmt.Errorf("invalid report request: %w", err)
	}

	opts := client.StartWorkflowOptions{
		ID:        WorkflowIDPrefix + req.DatasetDigest[:16] + "-" + runID,
		TaskQueue: cfg.TaskQueue,
	}

	run, err := c.ExecuteWorkflow(ctx, opts, workflow.ReportWorkflow, workflow.ReportWorkflowInput{
		Request:         req,
		ActivityTimeout: cfg.ActivityTimeout,
	})
	if err != nil {
		return domain.Result{}, fmt.Errorf("failed to start report workflow: %w", err)
	}

	var result domain.Result
	if err := run.Get(ctx, &result); err != nil {
		return domain.Result{}, fmt.Errorf("report workflow %s failed: %w", run.GetID(), err)
	}
	return result, nil
}
