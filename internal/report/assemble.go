// Package report builds the nested per-student report from the derived
// averages and the course and student metadata.
package report

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// Assemble builds the report. Students appear in the order of the students
// relation; each student's courses are sorted by course id. All lookups are
// keyed by student id and (student id, course id).
//
// A student without course averages gets an empty course list and a nil
// total average. A course average whose course is missing from the courses
// relation is still reported, with an empty name and teacher.
func Assemble(courses []domain.Course, students []domain.Student, averages *domain.Averages) domain.Report {
	logger := slog.Default().With("component", "report")

	coursesByID := make(map[int64]domain.Course, len(courses))
	for _, c := range courses {
		coursesByID[c.ID] = c
	}

	idx := averages.Index()

	out := domain.Report{Students: make([]domain.StudentReport, 0, len(students))}
	for _, s := range students {
		entry := domain.StudentReport{
			ID:      s.ID,
			Name:    domain.CleanText(s.Name),
			Courses: []domain.CourseReport{},
		}

		if total, ok := idx.Total(s.ID); ok {
			entry.TotalAverage = &total
		}

		studentCourses := slices.Clone(idx.CoursesOf(s.ID))
		slices.SortFunc(studentCourses, func(a, b domain.CourseAverage) int {
			return cmp.Compare(a.CourseID, b.CourseID)
		})

		for _, ca := range studentCourses {
			course, ok := coursesByID[ca.CourseID]
			if !ok {
				logger.Warn("course average references unknown course",
					"student_id", s.ID,
					"course_id", ca.CourseID)
			}

			entry.Courses = append(entry.Courses, domain.CourseReport{
				ID:            ca.CourseID,
				Name:          domain.CleanText(course.Name),
				Teacher:       domain.CleanText(course.Teacher),
				CourseAverage: ca.Value,
			})
		}

		out.Students = append(out.Students, entry)
	}

	return out
}
