package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-gradebook/internal/domain"
)

func TestMarshal(t *testing.T) {
	t.Run("indents with four spaces", func(t *testing.T) {
		total := 86.0
		result := domain.NewReportResult(domain.Report{Students: []domain.StudentReport{{
			ID:           1,
			Name:         "A",
			TotalAverage: &total,
			Courses:      []domain.CourseReport{{ID: 1, Name: "Math", Teacher: "T", CourseAverage: 86}},
		}}})

		data, err := Marshal(result)
		require.NoError(t, err)

		want := `{
    "students": [
        {
            "id": 1,
            "name": "A",
            "totalAverage": 86,
            "courses": [
                {
                    "id": 1,
                    "name": "Math",
                    "teacher": "T",
                    "courseAverage": 86
                }
            ]
        }
    ]
}
`
		assert.Equal(t, want, string(data))
	})

	t.Run("null total and empty courses", func(t *testing.T) {
		result := domain.NewReportResult(domain.Report{Students: []domain.StudentReport{
			{ID: 2, Name: "B", Courses: []domain.CourseReport{}},
		}})

		data, err := Marshal(result)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"totalAverage": null`)
		assert.Contains(t, string(data), `"courses": []`)
	})

	t.Run("keeps non-ascii and html characters", func(t *testing.T) {
		result := domain.NewReportResult(domain.Report{Students: []domain.StudentReport{
			{ID: 1, Name: "Zoë", Courses: []domain.CourseReport{}},
			{ID: 2, Name: "R&D <x>", Courses: []domain.CourseReport{}},
		}})

		data, err := Marshal(result)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"Zoë"`)
		assert.Contains(t, string(data), `"R&D <x>"`)
	})

	t.Run("error result", func(t *testing.T) {
		data, err := Marshal(domain.NewInvalidWeightsResult())
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"error\": \"Invalid course weights\"\n}\n", string(data))
	})
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteFile(path, domain.NewInvalidWeightsResult()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Invalid course weights"}`, string(data))

	// Existing content is replaced.
	require.NoError(t, WriteFile(path, domain.NewReportResult(domain.Report{})))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"students": []}`, string(data))
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	assert.Error(t, WriteFile(path, domain.NewInvalidWeightsResult()))
}
