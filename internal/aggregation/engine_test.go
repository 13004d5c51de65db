package aggregation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-gradebook/internal/domain"
)

// TestComputeAverages_ScenarioA verifies a single course with two weighted
// tests: 0.4*80 + 0.6*90 = 86.
func TestComputeAverages_ScenarioA(t *testing.T) {
	students := []domain.Student{{ID: 1, Name: "A"}}
	tests := []domain.Test{
		{ID: 1, CourseID: 1, Weight: 40},
		{ID: 2, CourseID: 1, Weight: 60},
	}
	marks := []domain.Mark{
		{StudentID: 1, TestID: 1, Mark: 80},
		{StudentID: 1, TestID: 2, Mark: 90},
	}

	got := ComputeAverages(students, tests, marks)

	assert.Equal(t, []domain.CourseAverage{{StudentID: 1, CourseID: 1, Value: 86}}, got.CourseAverages)
	assert.Equal(t, []domain.TotalAverage{{StudentID: 1, Value: 86}}, got.TotalAverages)
	assert.Zero(t, got.DroppedMarks)
}

// TestComputeAverages_ScenarioD verifies that the total average is the mean
// of course averages.
func TestComputeAverages_ScenarioD(t *testing.T) {
	students := []domain.Student{{ID: 1, Name: "A"}}
	tests := []domain.Test{
		{ID: 1, CourseID: 1, Weight: 100},
		{ID: 2, CourseID: 2, Weight: 100},
	}
	marks := []domain.Mark{
		{StudentID: 1, TestID: 1, Mark: 70},
		{StudentID: 1, TestID: 2, Mark: 90},
	}

	got := ComputeAverages(students, tests, marks)

	idx := got.Index()
	v, ok := idx.Course(1, 1)
	require.True(t, ok)
	assert.Equal(t, 70.0, v)
	v, ok = idx.Course(1, 2)
	require.True(t, ok)
	assert.Equal(t, 90.0, v)
	total, ok := idx.Total(1)
	require.True(t, ok)
	assert.Equal(t, 80.0, total)
}

// TestComputeAverages_MeanOfCourses verifies that a course with many tests
// does not outweigh a course with one test in the total.
func TestComputeAverages_MeanOfCourses(t *testing.T) {
	students := []domain.Student{{ID: 1}}
	tests := []domain.Test{
		{ID: 1, CourseID: 1, Weight: 25},
		{ID: 2, CourseID: 1, Weight: 25},
		{ID: 3, CourseID: 1, Weight: 25},
		{ID: 4, CourseID: 1, Weight: 25},
		{ID: 5, CourseID: 2, Weight: 100},
	}
	marks := []domain.Mark{
		{StudentID: 1, TestID: 1, Mark: 60},
		{StudentID: 1, TestID: 2, Mark: 60},
		{StudentID: 1, TestID: 3, Mark: 60},
		{StudentID: 1, TestID: 4, Mark: 60},
		{StudentID: 1, TestID: 5, Mark: 100},
	}

	got := ComputeAverages(students, tests, marks)

	total, ok := got.Index().Total(1)
	require.True(t, ok)
	assert.Equal(t, 80.0, total, "mean of 60 and 100, not the mean of the five marks")
}

func TestComputeAverages_PartialMarks(t *testing.T) {
	// Only the weight-60 test was taken; the missing test contributes nothing.
	students := []domain.Student{{ID: 1}}
	tests := []domain.Test{
		{ID: 1, CourseID: 1, Weight: 40},
		{ID: 2, CourseID: 1, Weight: 60},
	}
	marks := []domain.Mark{{StudentID: 1, TestID: 2, Mark: 90}}

	got := ComputeAverages(students, tests, marks)
	assert.Equal(t, []domain.CourseAverage{{StudentID: 1, CourseID: 1, Value: 54}}, got.CourseAverages)
}

func TestComputeAverages_Rounding(t *testing.T) {
	students := []domain.Student{{ID: 1}}
	tests := []domain.Test{
		{ID: 1, CourseID: 1, Weight: 30},
		{ID: 2, CourseID: 1, Weight: 70},
		{ID: 3, CourseID: 2, Weight: 100},
	}
	marks := []domain.Mark{
		{StudentID: 1, TestID: 1, Mark: 77.77},
		{StudentID: 1, TestID: 2, Mark: 66.66},
		{StudentID: 1, TestID: 3, Mark: 50},
	}

	got := ComputeAverages(students, tests, marks)

	// 23.331 + 46.662 = 69.993
	course, _ := got.Index().Course(1, 1)
	assert.Equal(t, 69.99, course)
	// (69.993 + 50) / 2 = 59.9965
	total, _ := got.Index().Total(1)
	assert.Equal(t, 60.0, total)
}

func TestComputeAverages_NoMarks(t *testing.T) {
	students := []domain.Student{{ID: 1}, {ID: 2}}
	tests := []domain.Test{{ID: 1, CourseID: 1, Weight: 100}}
	marks := []domain.Mark{{StudentID: 1, TestID: 1, Mark: 50}}

	got := ComputeAverages(students, tests, marks)

	_, ok := got.Index().Total(2)
	assert.False(t, ok, "a student with zero marks has no total average row")
	assert.Empty(t, got.Index().CoursesOf(2))
	assert.Len(t, got.TotalAverages, 1)
}

func TestComputeAverages_DropsUnknownReferences(t *testing.T) {
	students := []domain.Student{{ID: 1}}
	tests := []domain.Test{{ID: 1, CourseID: 1, Weight: 100}}
	marks := []domain.Mark{
		{StudentID: 1, TestID: 1, Mark: 50},
		{StudentID: 1, TestID: 99, Mark: 100},
		{StudentID: 42, TestID: 1, Mark: 100},
	}

	got := ComputeAverages(students, tests, marks)

	assert.Equal(t, 2, got.DroppedMarks)
	assert.Equal(t, []domain.CourseAverage{{StudentID: 1, CourseID: 1, Value: 50}}, got.CourseAverages)
}

func TestComputeAverages_Empty(t *testing.T) {
	got := ComputeAverages(nil, nil, nil)
	assert.NotNil(t, got.CourseAverages)
	assert.NotNil(t, got.TotalAverages)
	assert.Empty(t, got.CourseAverages)
	assert.Empty(t, got.TotalAverages)
}

func TestComputeAverages_SortedOutput(t *testing.T) {
	students := []domain.Student{{ID: 3}, {ID: 1}}
	tests := []domain.Test{
		{ID: 10, CourseID: 5, Weight: 100},
		{ID: 11, CourseID: 2, Weight: 100},
	}
	marks := []domain.Mark{
		{StudentID: 3, TestID: 10, Mark: 10},
		{StudentID: 1, TestID: 10, Mark: 20},
		{StudentID: 3, TestID: 11, Mark: 30},
	}

	got := ComputeAverages(students, tests, marks)

	assert.Equal(t, []domain.CourseAverage{
		{StudentID: 1, CourseID: 5, Value: 20},
		{StudentID: 3, CourseID: 2, Value: 30},
		{StudentID: 3, CourseID: 5, Value: 10},
	}, got.CourseAverages)
	assert.Equal(t, []domain.TotalAverage{
		{StudentID: 1, Value: 20},
		{StudentID: 3, Value: 20},
	}, got.TotalAverages)
}

// TestComputeAverages_OrderInvariance verifies that permuting rows of any
// relation leaves the derived relations unchanged.
func TestComputeAverages_OrderInvariance(t *testing.T) {
	students, tests, marks := sampleDataset(7, 20, 6)
	want := ComputeAverages(students, tests, marks)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		s := shuffled(rng, students)
		ts := shuffled(rng, tests)
		ms := shuffled(rng, marks)

		assert.Equal(t, want, ComputeAverages(s, ts, ms), "permutation %d", i)
	}
}

func TestComputeAverages_Idempotent(t *testing.T) {
	students, tests, marks := sampleDataset(3, 10, 4)
	assert.Equal(t, ComputeAverages(students, tests, marks), ComputeAverages(students, tests, marks))
}

func TestComputeAverages_DoesNotMutateInput(t *testing.T) {
	students, tests, marks := sampleDataset(3, 5, 2)
	marksCopy := append([]domain.Mark(nil), marks...)

	ComputeAverages(students, tests, marks)

	assert.Equal(t, marksCopy, marks)
}

// sampleDataset builds a dataset whose courses each carry four tests
// weighted 10/20/30/40.
func sampleDataset(seed int64, numStudents, numCourses int) ([]domain.Student, []domain.Test, []domain.Mark) {
	rng := rand.New(rand.NewSource(seed))
	weights := []float64{10, 20, 30, 40}

	var students []domain.Student
	for i := 1; i <= numStudents; i++ {
		students = append(students, domain.Student{ID: int64(i)})
	}

	var tests []domain.Test
	id := int64(1)
	for c := 1; c <= numCourses; c++ {
		for _, w := range weights {
			tests = append(tests, domain.Test{ID: id, CourseID: int64(c), Weight: w})
			id++
		}
	}

	var marks []domain.Mark
	for _, s := range students {
		for _, t := range tests {
			if rng.Intn(4) == 0 {
				continue
			}
			marks = append(marks, domain.Mark{
				StudentID: s.ID,
				TestID:    t.ID,
				Mark:      float64(rng.Intn(10001)) / 100,
			})
		}
	}

	return students, tests, marks
}

func shuffled[T any](rng *rand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func FuzzComputeAverages(f *testing.F) {
	f.Add(int64(1), uint8(3), uint8(2))
	f.Add(int64(42), uint8(0), uint8(1))
	f.Add(int64(7), uint8(10), uint8(0))

	f.Fuzz(func(t *testing.T, seed int64, numStudents, numCourses uint8) {
		students, tests, marks := sampleDataset(seed, int(numStudents%16), int(numCourses%8))

		got := ComputeAverages(students, tests, marks)

		// Every mark lies in [0, 100] and weights sum to 100, so every
		// average does too.
		for _, ca := range got.CourseAverages {
			if ca.Value < 0 || ca.Value > 100 {
				t.Fatalf("course average out of range: %+v", ca)
			}
		}
		for _, ta := range got.TotalAverages {
			if ta.Value < 0 || ta.Value > 100 {
				t.Fatalf("total average out of range: %+v", ta)
			}
		}

		rng := rand.New(rand.NewSource(seed))
		again := ComputeAverages(shuffled(rng, students), shuffled(rng, tests), shuffled(rng, marks))
		if len(again.CourseAverages) != len(got.CourseAverages) {
			t.Fatalf("row count depends on order: %d != %d", len(again.CourseAverages), len(got.CourseAverages))
		}
		for i := range got.CourseAverages {
			if got.CourseAverages[i] != again.CourseAverages[i] {
				t.Fatalf("course average depends on order: %+v != %+v", got.CourseAverages[i], again.CourseAverages[i])
			}
		}
	})
}

func BenchmarkComputeAverages(b *testing.B) {
	students, tests, marks := sampleDataset(1, 1000, 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeAverages(students, tests, marks)
	}
}
