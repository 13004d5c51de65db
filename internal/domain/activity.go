package domain

// Operation contracts for the report pipeline. Each stage of the pipeline
// (weights → averages → assembly) has an input type carrying only the
// relations it reads plus the dataset digest used to correlate events.
//
// Contract locations:
//   - ReportRequest: the four relations of a run (workflow input)
//   - ValidateWeightsInput / ValidateWeightsOutput: course weight check
//   - ComputeAveragesInput: derived relations, output is Averages (aggregation.go)
//   - AssembleReportInput: nested report, output is Report (report.go)

// ReportRequest is the input of a report run.
type ReportRequest struct {
	Dataset Dataset `json:"dataset"`

	// DatasetDigest is the hex SHA-256 of the canonical dataset encoding.
	DatasetDigest string `json:"dataset_digest" validate:"required,len=64,hexadecimal"`
}

// Validate checks the request, including id uniqueness in the dataset.
func (r *ReportRequest) Validate() error { return validate.Struct(r) }

// ValidateWeightsInput is the input of the course weight check.
type ValidateWeightsInput struct {
	Tests         []Test `json:"tests"`
	DatasetDigest string `json:"dataset_digest" validate:"required"`
}

// ValidateWeightsOutput reports whether every course's weights sum to 100.
// Violations is sorted by course id and empty when Valid is true.
type ValidateWeightsOutput struct {
	Valid      bool              `json:"valid"`
	Violations []CourseWeightSum `json:"violations,omitempty"`
}

// ComputeAveragesInput is the input of the aggregation stage.
type ComputeAveragesInput struct {
	Students      []Student `json:"students"`
	Tests         []Test    `json:"tests"`
	Marks         []Mark    `json:"marks"`
	DatasetDigest string    `json:"dataset_digest" validate:"required"`
}

// AssembleReportInput is the input of the assembly stage.
type AssembleReportInput struct {
	Courses       []Course  `json:"courses"`
	Students      []Student `json:"students"`
	Averages      Averages  `json:"averages"`
	DatasetDigest string    `json:"dataset_digest" validate:"required"`
}

// Validate checks the weight check input.
func (v *ValidateWeightsInput) Validate() error { return validate.Struct(v) }

// Validate checks the aggregation input.
func (c *ComputeAveragesInput) Validate() error { return validate.Struct(c) }

// Validate checks the assembly input.
func (a *AssembleReportInput) Validate() error { return validate.Struct(a) }
