package reports

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVolumeCSV(t *testing.T) {
	rows := []VolumeRow{
		{WorkoutType: "Strength", TotalWorkouts: 2, TotalDuration: 105, TotalExercises: 62, TotalWeight: 3420},
	}

	out := string(RenderVolumeCSV(rows))

	require.True(t, strings.HasPrefix(out, "\ufeff"), "output must start with a UTF-8 BOM")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	reader.Comma = ';'

	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Workout Type", "Total Workouts", "Total Duration (min)", "Total Exercises", "Total Weight (kg)"}, records[0])
	assert.Equal(t, []string{"Strength", "2", "105", "62", "3420.00"}, records[1])
}

func TestRenderRecordsCSV(t *testing.T) {
	rows := []RecordRow{
		{ExerciseName: "Bench Press", Date: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), MaxWeight: 100, Sets: 3, Reps: 8},
	}

	out := string(RenderRecordsCSV(rows))

	require.True(t, strings.HasPrefix(out, "\ufeff"))

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff")))
	reader.Comma = ';'

	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Date", "Exercise", "Max Weight (kg)", "Sets", "Reps"}, records[0])
	assert.Equal(t, []string{"15.08.2026", "Bench Press", "100.00", "3", "8"}, records[1])
}

func TestRenderCSVUsesSemicolonDelimiter(t *testing.T) {
	out := string(RenderVolumeCSV([]VolumeRow{{WorkoutType: "Cardio", TotalWorkouts: 1}}))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], ";")
	assert.Equal(t, "Cardio;1;0;0;0.00", lines[1])
}

// The point decimal separator alongside the semicolon delimiter is a deliberate
// inconsistency: comma-decimal locales split columns on the semicolon but the
// numbers themselves stay machine-readable.
func TestRenderCSVDecimalPoint(t *testing.T) {
	out := string(RenderVolumeCSV([]VolumeRow{{WorkoutType: "Strength", TotalWeight: 1234.5}}))

	assert.Contains(t, out, "1234.50")
	assert.NotContains(t, out, "1234,50")
}

func TestRenderVolumeCSVEmpty(t *testing.T) {
	out := string(RenderVolumeCSV(nil))

	// Header only, still BOM-tagged.
	assert.True(t, strings.HasPrefix(out, "\ufeff"))
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(out), "\n")+1)
}
