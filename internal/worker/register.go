// Package worker exposes helpers to register workflows/activities with a Temporal worker.
package worker

import (
	sdkactivity "go.temporal.io/sdk/activity"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-gradebook/internal/aggregation"
	"github.com/ahrav/go-gradebook/internal/report"
	"github.com/ahrav/go-gradebook/internal/weighting"
	"github.com/ahrav/go-gradebook/internal/workflow"
	"github.com/ahrav/go-gradebook/pkg/activity"
	"github.com/ahrav/go-gradebook/pkg/events"
)

// Registry is the subset of a Temporal worker used for registration.
// sdkworker.Worker and the test workflow environment both satisfy it.
type Registry interface {
	RegisterWorkflow(w any)
	RegisterActivityWithOptions(a any, options sdkactivity.RegisterOptions)
}

var _ Registry = (sdkworker.Worker)(nil)

// RegisterAll registers the report workflow and the activities of every
// pipeline stage. It must be called once during worker initialization,
// before the worker starts.
func RegisterAll(w Registry, sink events.EventSink) {
	if sink == nil {
		sink = events.NewNoOpEventSink()
	}
	base := activity.NewBaseActivities(sink)

	w.RegisterWorkflow(workflow.ReportWorkflow)

	// The embedded BaseActivities helpers are not activities.
	opts := sdkactivity.RegisterOptions{SkipInvalidStructFunctions: true}
	w.RegisterActivityWithOptions(weighting.NewActivities(base), opts)
	w.RegisterActivityWithOptions(aggregation.NewActivities(base), opts)
	w.RegisterActivityWithOptions(report.NewActivities(base), opts)
}
