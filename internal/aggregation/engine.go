// Package aggregation derives per-course weighted averages and per-student
// total averages from the marks, tests and students relations.
package aggregation

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// percent converts a weight in percentage points into a fraction.
const percent = 100

// weightedMark is a mark joined with its test and student.
type weightedMark struct {
	studentID int64
	courseID  int64
	testID    int64
	value     float64
}

// ComputeAverages joins marks to tests and students and computes the two
// derived relations.
//
// Algorithm:
//   - Marks whose test or student is unknown are dropped (inner joins) and
//     counted in DroppedMarks.
//   - Each remaining mark contributes mark * (weight / 100) to its
//     (student, course) group; the sum is the course average.
//   - A student's total average is the mean of their course averages, so
//     every course counts equally regardless of its number of tests.
//   - Both values are rounded with domain.Round2; totals are computed from
//     unrounded course sums.
//
// Rows are sorted by (student, course, test, weighted value) before summing,
// which makes the floating point result independent of input row order.
// The course sums are only proper weighted means when the weighting
// invariant holds; callers check it first.
func ComputeAverages(students []domain.Student, tests []domain.Test, marks []domain.Mark) domain.Averages {
	rows, dropped := join(students, tests, marks)
	if dropped > 0 {
		slog.Default().With("component", "aggregation").Debug("dropped marks with unknown test or student",
			"dropped", dropped,
			"marks", len(marks))
	}

	slices.SortFunc(rows, func(a, b weightedMark) int {
		return cmp.Or(
			cmp.Compare(a.studentID, b.studentID),
			cmp.Compare(a.courseID, b.courseID),
			cmp.Compare(a.testID, b.testID),
			cmp.Compare(a.value, b.value),
		)
	})

	out := domain.Averages{
		CourseAverages: []domain.CourseAverage{},
		TotalAverages:  []domain.TotalAverage{},
		DroppedMarks:   dropped,
	}

	var courseSums []float64
	flushStudent := func(studentID int64) {
		if len(courseSums) == 0 {
			return
		}
		out.TotalAverages = append(out.TotalAverages, domain.TotalAverage{
			StudentID: studentID,
			Value:     domain.Round2(domain.Mean(courseSums)),
		})
		courseSums = courseSums[:0]
	}

	for i := 0; i < len(rows); {
		student, course := rows[i].studentID, rows[i].courseID

		var sum float64
		for ; i < len(rows) && rows[i].studentID == student && rows[i].courseID == course; i++ {
			sum += rows[i].value
		}

		out.CourseAverages = append(out.CourseAverages, domain.CourseAverage{
			StudentID: student,
			CourseID:  course,
			Value:     domain.Round2(sum),
		})
		courseSums = append(courseSums, sum)

		if i == len(rows) || rows[i].studentID != student {
			flushStudent(student)
		}
	}

	return out
}

// join performs the mark→test and mark→student inner joins through hash maps.
func join(students []domain.Student, tests []domain.Test, marks []domain.Mark) ([]weightedMark, int) {
	testsByID := make(map[int64]domain.Test, len(tests))
	for _, t := range tests {
		testsByID[t.ID] = t
	}

	knownStudents := make(map[int64]struct{}, len(students))
	for _, s := range students {
		knownStudents[s.ID] = struct{}{}
	}

	rows := make([]weightedMark, 0, len(marks))
	dropped := 0
	for _, m := range marks {
		t, ok := testsByID[m.TestID]
		if !ok {
			dropped++
			continue
		}
		if _, ok := knownStudents[m.StudentID]; !ok {
			dropped++
			continue
		}

		rows = append(rows, weightedMark{
			studentID: m.StudentID,
			courseID:  t.CourseID,
			testID:    t.ID,
			value:     m.Mark * (t.Weight / percent),
		})
	}

	return rows, dropped
}
