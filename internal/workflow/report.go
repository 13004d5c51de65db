package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/go-gradebook/internal/aggregation"
	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/internal/report"
	"github.com/ahrav/go-gradebook/internal/weighting"
)

// DefaultActivityTimeout bounds each stage when the caller sets no timeout.
const DefaultActivityTimeout = 30 * time.Second

// Activity references used to schedule activities by method.
var (
	weightingActivities   *weighting.Activities
	aggregationActivities *aggregation.Activities
	reportActivities      *report.Activities
)

// ReportWorkflowInput is the input of ReportWorkflow.
type ReportWorkflowInput struct {
	Request domain.ReportRequest `json:"request"`

	// ActivityTimeout is the start-to-close timeout of every stage.
	// Zero selects DefaultActivityTimeout.
	ActivityTimeout time.Duration `json:"activity_timeout"`
}

// ReportWorkflow generates the report for a dataset.
// Invalid course weights end the workflow successfully with the error result;
// only invalid requests and activity failures produce workflow errors.
func ReportWorkflow(ctx workflow.Context, input ReportWorkflowInput) (*domain.Result, error) {
	// Version gate enables safe evolution of the stage sequence.
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "report.v", workflow.DefaultVersion, currentVersion)

	req := input.Request
	if err := req.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid report request",
			"Validation",
			err,
		)
	}

	timeout := input.ActivityTimeout
	if timeout <= 0 {
		timeout = DefaultActivityTimeout
	}
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: timeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	logger := workflow.GetLogger(ctx)

	ds := req.Dataset

	var weights domain.ValidateWeightsOutput
	err := workflow.ExecuteActivity(ctx, weightingActivities.ValidateWeights, domain.ValidateWeightsInput{
		Tests:         ds.Tests,
		DatasetDigest: req.DatasetDigest,
	}).Get(ctx, &weights)
	if err != nil {
		return nil, err
	}
	if !weights.Valid {
		logger.Info("Course weights rejected", "violations", len(weights.Violations))
		result := domain.NewInvalidWeightsResult()
		return &result, nil
	}

	var averages domain.Averages
	err = workflow.ExecuteActivity(ctx, aggregationActivities.ComputeAverages, domain.ComputeAveragesInput{
		Students:      ds.Students,
		Tests:         ds.Tests,
		Marks:         ds.Marks,
		DatasetDigest: req.DatasetDigest,
	}).Get(ctx, &averages)
	if err != nil {
		return nil, err
	}

	var out domain.Report
	err = workflow.ExecuteActivity(ctx, reportActivities.AssembleReport, domain.AssembleReportInput{
		Courses:       ds.Courses,
		Students:      ds.Students,
		Averages:      averages,
		DatasetDigest: req.DatasetDigest,
	}).Get(ctx, &out)
	if err != nil {
		return nil, err
	}

	result := domain.NewReportResult(out)
	return &result, nil
}
