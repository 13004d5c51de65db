package domain

import "fmt"

// Dataset bundles the four input relations of a report run.
// Row order is significant only for Students, which fixes the order of the
// report.
type Dataset struct {
	Courses  []Course  `json:"courses" validate:"unique=ID"`
	Students []Student `json:"students" validate:"unique=ID"`
	Tests    []Test    `json:"tests" validate:"unique=ID"`
	Marks    []Mark    `json:"marks"`
}

// Validate checks the structural rules of the relations: ids of courses,
// students and tests are unique. It does not check course weights; that is
// the job of the weighting package.
func (d *Dataset) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return nil
}
