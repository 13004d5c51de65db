package domain

import "math"

// CourseAverage is the weighted average a student obtained in a course,
// rounded to two decimals.
type CourseAverage struct {
	StudentID int64   `json:"student_id"`
	CourseID  int64   `json:"course_id"`
	Value     float64 `json:"value"`
}

// TotalAverage is the mean of a student's course averages, rounded to two
// decimals.
type TotalAverage struct {
	StudentID int64   `json:"student_id"`
	Value     float64 `json:"value"`
}

// Averages holds the two relations derived by the aggregation engine.
// CourseAverages is sorted by (StudentID, CourseID) and TotalAverages by
// StudentID. DroppedMarks counts mark rows whose test or student is unknown.
type Averages struct {
	CourseAverages []CourseAverage `json:"course_averages"`
	TotalAverages  []TotalAverage  `json:"total_averages"`
	DroppedMarks   int             `json:"dropped_marks"`
}

// AverageKey identifies a course average.
type AverageKey struct {
	StudentID int64
	CourseID  int64
}

// AverageIndex provides keyed access to Averages. Lookups never depend on the
// position of a row in either derived relation.
type AverageIndex struct {
	courses   map[AverageKey]float64
	totals    map[int64]float64
	byStudent map[int64][]CourseAverage
}

// Index builds the keyed lookups for a.
func (a *Averages) Index() *AverageIndex {
	idx := &AverageIndex{
		courses:   make(map[AverageKey]float64, len(a.CourseAverages)),
		totals:    make(map[int64]float64, len(a.TotalAverages)),
		byStudent: make(map[int64][]CourseAverage),
	}
	for _, ca := range a.CourseAverages {
		idx.courses[AverageKey{StudentID: ca.StudentID, CourseID: ca.CourseID}] = ca.Value
		idx.byStudent[ca.StudentID] = append(idx.byStudent[ca.StudentID], ca)
	}
	for _, ta := range a.TotalAverages {
		idx.totals[ta.StudentID] = ta.Value
	}
	return idx
}

// Course returns the course average of a student, if the student has marks
// in that course.
func (i *AverageIndex) Course(studentID, courseID int64) (float64, bool) {
	v, ok := i.courses[AverageKey{StudentID: studentID, CourseID: courseID}]
	return v, ok
}

// Total returns the total average of a student, if the student has any marks.
func (i *AverageIndex) Total(studentID int64) (float64, bool) {
	v, ok := i.totals[studentID]
	return v, ok
}

// CoursesOf returns the course averages of a student in the order they were
// derived (ascending course id).
func (i *AverageIndex) CoursesOf(studentID int64) []CourseAverage {
	return i.byStudent[studentID]
}

// Round2 rounds v to two decimals, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
// Values are summed in the order given.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
