// Package dataset loads the four input relations from CSV files.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// Paths locates the four CSV files of a run.
type Paths struct {
	Courses  string
	Students string
	Tests    string
	Marks    string
}

// Column sets required in each file. Extra columns are ignored.
var (
	courseColumns  = []string{"id", "name", "teacher"}
	studentColumns = []string{"id", "name"}
	testColumns    = []string{"id", "course_id", "weight"}
	markColumns    = []string{"test_id", "student_id", "mark"}
)

// Load reads and validates the four relations.
func Load(ctx context.Context, paths Paths) (*domain.Dataset, error) {
	var ds domain.Dataset
	var err error

	if ds.Courses, err = loadFile(ctx, paths.Courses, courseColumns, decodeCourse); err != nil {
		return nil, err
	}
	if ds.Students, err = loadFile(ctx, paths.Students, studentColumns, decodeStudent); err != nil {
		return nil, err
	}
	if ds.Tests, err = loadFile(ctx, paths.Tests, testColumns, decodeTest); err != nil {
		return nil, err
	}
	if ds.Marks, err = loadFile(ctx, paths.Marks, markColumns, decodeMark); err != nil {
		return nil, err
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func loadFile[T any](ctx context.Context, path string, columns []string, decode func(row) (T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // input paths are supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := read(f, columns, decode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// read decodes CSV from r. The first record is the header; columns are
// matched by trimmed name so their order is free.
func read[T any](r io.Reader, columns []string, decode func(row) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file, expected header %s", domain.ErrMissingColumn, strings.Join(columns, ","))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := headerIndex(header, columns)
	if err != nil {
		return nil, err
	}

	out := []T{}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRow, err)
		}
		if isBlank(fields) {
			continue
		}

		line, _ := cr.FieldPos(0)
		rec, err := decode(row{fields: fields, index: index, line: line})
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func headerIndex(header, columns []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ","))
	}
	return index, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// row is one CSV record with its header index.
type row struct {
	fields []string
	index  map[string]int
	line   int
}

func (r row) text(column string) (string, error) {
	i := r.index[column]
	if i >= len(r.fields) {
		return "", fmt.Errorf("%w: line %d: column %q missing", domain.ErrMalformedRow, r.line, column)
	}
	return r.fields[i], nil
}

func (r row) integer(column string) (int64, error) {
	s, err := r.text(column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: column %q: %q is not an integer", domain.ErrMalformedRow, r.line, column, s)
	}
	return v, nil
}

func (r row) number(column string) (float64, error) {
	s, err := r.text(column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: line %d: column %q: %q is not a number", domain.ErrMalformedRow, r.line, column, s)
	}
	return v, nil
}

func decodeCourse(r row) (domain.Course, error) {
	var c domain.Course
	var err error
	if c.ID, err = r.integer("id"); err != nil {
		return c, err
	}
	if c.Name, err = r.text("name"); err != nil {
		return c, err
	}
	c.Teacher, err = r.text("teacher")
	return c, err
}

func decodeStudent(r row) (domain.Student, error) {
	var s domain.Student
	var err error
	if s.ID, err = r.integer("id"); err != nil {
		return s, err
	}
	s.Name, err = r.text("name")
	return s, err
}

func decodeTest(r row) (domain.Test, error) {
	var t domain.Test
	var err error
	if t.ID, err = r.integer("id"); err != nil {
		return t, err
	}
	if t.CourseID, err = r.integer("course_id"); err != nil {
		return t, err
	}
	t.Weight, err = r.number("weight")
	return t, err
}

func decodeMark(r row) (domain.Mark, error) {
	var m domain.Mark
	var err error
	if m.TestID, err = r.integer("test_id"); err != nil {
		return m, err
	}
	if m.StudentID, err = r.integer("student_id"); err != nil {
		return m, err
	}
	m.Mark, err = r.number("mark")
	return m, err
}
