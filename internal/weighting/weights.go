// Package weighting enforces the course weight invariant: the tests of every
// course that has tests must carry weights summing to exactly 100.
package weighting

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// RequiredCourseWeight is the total weight every course's tests must declare.
const RequiredCourseWeight = 100

// CourseWeightSums returns the total weight declared for each course that
// has at least one test, sorted by course id. Weights of a course are added
// in ascending test id order so the sums do not depend on row order.
func CourseWeightSums(tests []domain.Test) []domain.CourseWeightSum {
	if len(tests) == 0 {
		return nil
	}

	ordered := slices.Clone(tests)
	slices.SortFunc(ordered, func(a, b domain.Test) int {
		return cmp.Or(cmp.Compare(a.CourseID, b.CourseID), cmp.Compare(a.ID, b.ID))
	})

	var sums []domain.CourseWeightSum
	for _, t := range ordered {
		if n := len(sums); n > 0 && sums[n-1].CourseID == t.CourseID {
			sums[n-1].Sum += t.Weight
			continue
		}
		sums = append(sums, domain.CourseWeightSum{CourseID: t.CourseID, Sum: t.Weight})
	}
	return sums
}

// Violations returns the courses whose weights do not sum to exactly
// RequiredCourseWeight, sorted by course id.
// A course without tests never appears and is therefore never a violation.
func Violations(tests []domain.Test) []domain.CourseWeightSum {
	var bad []domain.CourseWeightSum
	for _, s := range CourseWeightSums(tests) {
		if s.Sum != RequiredCourseWeight {
			bad = append(bad, s)
		}
	}
	return bad
}

// CheckCourseWeights reports whether every course's test weights sum to
// exactly 100. It is vacuously true when there are no tests.
func CheckCourseWeights(tests []domain.Test) bool {
	return len(Violations(tests)) == 0
}

// Validate returns nil when the weights are valid, or an error wrapping
// domain.ErrInvalidCourseWeights that names every offending course.
func Validate(tests []domain.Test) error {
	bad := Violations(tests)
	if len(bad) == 0 {
		return nil
	}

	parts := make([]string, 0, len(bad))
	for _, v := range bad {
		parts = append(parts, fmt.Sprintf("course %d sums to %g", v.CourseID, v.Sum))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidCourseWeights, strings.Join(parts, ", "))
}
