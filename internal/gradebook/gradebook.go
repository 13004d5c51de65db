// Package gradebook is the function boundary of the report pipeline: four
// relations in, one result out. It holds no state between calls.
package gradebook

import (
	"log/slog"

	"github.com/ahrav/go-gradebook/internal/aggregation"
	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/internal/report"
	"github.com/ahrav/go-gradebook/internal/weighting"
)

// Generate produces the report for ds.
//
// The course weight check gates the run: when any course's weights do not
// sum to 100 the result is the error result and nothing else is computed.
// Otherwise the averages are derived and assembled into the nested report.
func Generate(ds *domain.Dataset) domain.Result {
	logger := slog.Default().With("component", "gradebook")

	if err := weighting.Validate(ds.Tests); err != nil {
		logger.Warn("course weights rejected", "error", err)
		return domain.NewInvalidWeightsResult()
	}

	averages := aggregation.ComputeAverages(ds.Students, ds.Tests, ds.Marks)
	out := report.Assemble(ds.Courses, ds.Students, &averages)

	logger.Debug("report generated",
		"students", len(out.Students),
		"course_averages", len(averages.CourseAverages),
		"dropped_marks", averages.DroppedMarks)

	return domain.NewReportResult(out)
}
