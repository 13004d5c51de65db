// Package domain defines the relations the gradebook reads, the relations it
// derives from them and the report it produces. Every function in this
// package is pure.
package domain

import "strings"

// Course is a row of the courses relation.
// Name and Teacher are kept as read; the report trims them.
type Course struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Teacher string `json:"teacher"`
}

// Student is a row of the students relation.
type Student struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Test is a row of the tests relation. Weight is expressed in percentage
// points of the owning course.
type Test struct {
	ID       int64   `json:"id"`
	CourseID int64   `json:"course_id"`
	Weight   float64 `json:"weight"`
}

// Mark is a row of the marks relation: the score a student obtained on a test.
// (StudentID, TestID) is expected to be unique but is not enforced; duplicate
// rows each contribute to the course average.
type Mark struct {
	StudentID int64   `json:"student_id"`
	TestID    int64   `json:"test_id"`
	Mark      float64 `json:"mark"`
}

// CleanText trims the surrounding whitespace that the source tables carry on
// names and teachers.
func CleanText(s string) string { return strings.TrimSpace(s) }
