package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-gradebook/internal/domain"
)

func TestDatasetValidate(t *testing.T) {
	valid := func() domain.Dataset {
		return domain.Dataset{
			Courses:  []domain.Course{{ID: 1, Name: "Math", Teacher: "T"}, {ID: 2, Name: "Art", Teacher: "U"}},
			Students: []domain.Student{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
			Tests:    []domain.Test{{ID: 1, CourseID: 1, Weight: 100}, {ID: 2, CourseID: 2, Weight: 100}},
			Marks:    []domain.Mark{{StudentID: 1, TestID: 1, Mark: 50}, {StudentID: 1, TestID: 1, Mark: 60}},
		}
	}

	t.Run("valid dataset", func(t *testing.T) {
		ds := valid()
		require.NoError(t, ds.Validate())
	})

	t.Run("empty dataset is valid", func(t *testing.T) {
		ds := domain.Dataset{}
		require.NoError(t, ds.Validate())
	})

	t.Run("duplicate marks are allowed", func(t *testing.T) {
		ds := valid()
		ds.Marks = append(ds.Marks, ds.Marks...)
		require.NoError(t, ds.Validate())
	})

	cases := map[string]func(*domain.Dataset){
		"duplicate course id":  func(d *domain.Dataset) { d.Courses[1].ID = 1 },
		"duplicate student id": func(d *domain.Dataset) { d.Students[1].ID = 1 },
		"duplicate test id":    func(d *domain.Dataset) { d.Tests[1].ID = 1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			ds := valid()
			mutate(&ds)
			err := ds.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDataset)
		})
	}
}

func TestReportRequestValidate(t *testing.T) {
	digest := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	req := domain.ReportRequest{DatasetDigest: digest}
	require.NoError(t, req.Validate())

	req.DatasetDigest = "short"
	assert.Error(t, req.Validate())

	req = domain.ReportRequest{
		DatasetDigest: digest,
		Dataset:       domain.Dataset{Students: []domain.Student{{ID: 1}, {ID: 1}}},
	}
	assert.Error(t, req.Validate(), "nested dataset rules apply")
}
