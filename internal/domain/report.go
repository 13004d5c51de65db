package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// InvalidCourseWeightsMessage is the error text of a report rejected because
// course weights do not sum to 100.
const InvalidCourseWeightsMessage = "Invalid course weights"

// CourseReport is one course entry of a student's report.
type CourseReport struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Teacher       string  `json:"teacher"`
	CourseAverage float64 `json:"courseAverage"`
}

// StudentReport is one student entry of the report. TotalAverage is nil when
// the student has no marks, and Courses is then empty.
type StudentReport struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	TotalAverage *float64       `json:"totalAverage"`
	Courses      []CourseReport `json:"courses"`
}

// HasMarks reports whether the student has at least one course average.
func (s StudentReport) HasMarks() bool { return s.TotalAverage != nil }

// Report is the nested per-student report.
type Report struct {
	Students []StudentReport `json:"students"`
}

// Result is the outcome of a report run: either a report or an error message.
// Exactly one of the two shapes is serialized.
type Result struct {
	Error  string  `json:"error,omitempty"`
	Report *Report `json:"-"`
}

// NewReportResult wraps a successful report.
func NewReportResult(r Report) Result { return Result{Report: &r} }

// NewInvalidWeightsResult returns the result produced when course weights are invalid.
func NewInvalidWeightsResult() Result { return Result{Error: InvalidCourseWeightsMessage} }

// Failed reports whether the result is an error result.
func (r Result) Failed() bool { return r.Error != "" }

// MarshalJSON renders {"error": ...} for failures and {"students": [...]} otherwise.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return marshalUnescaped(struct {
			Error string `json:"error"`
		}{Error: r.Error})
	}

	students := []StudentReport{}
	if r.Report != nil && r.Report.Students != nil {
		students = r.Report.Students
	}
	return marshalUnescaped(Report{Students: students})
}

// marshalUnescaped is json.Marshal without HTML escaping, so names such as
// "R&D" reach the report unchanged.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON accepts either shape produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Error    string          `json:"error"`
		Students []StudentReport `json:"students"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}

	if raw.Error != "" {
		*r = Result{Error: raw.Error}
		return nil
	}
	if raw.Students == nil {
		raw.Students = []StudentReport{}
	}
	*r = Result{Report: &Report{Students: raw.Students}}
	return nil
}
