package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/thehaffk/WorkoutTracker/internal/models"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string][]byte)
	for _, file := range reader.File {
		rc, err := file.Open()
		require.NoError(t, err)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		entries[file.Name] = content
	}

	return entries
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestExportExercise(t *testing.T) {
	dir := t.TempDir()

	exercise := models.Exercise{
		Model:       gorm.Model{ID: 5, CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)},
		Name:        "Bench Press",
		Description: "Flat barbell bench press",
		MuscleGroup: "Chest",
		Equipment:   "Barbell",
		Difficulty:  "intermediate",
		IsPublic:    true,
	}

	attachments := []models.Attachment{
		{OriginalFilename: "form.png", FilePath: writeTempFile(t, dir, "a1.png", "png-bytes")},
		{OriginalFilename: "notes.txt", FilePath: writeTempFile(t, dir, "a2.txt", "some notes")},
	}

	data, err := ExportExercise(exercise, attachments, "editor")
	require.NoError(t, err)

	entries := readArchive(t, data)
	require.Contains(t, entries, "exercise.json")
	assert.Equal(t, []byte("png-bytes"), entries["attachments/form.png"])
	assert.Equal(t, []byte("some notes"), entries["attachments/notes.txt"])

	var manifest ExerciseManifest
	require.NoError(t, json.Unmarshal(entries["exercise.json"], &manifest))

	assert.Equal(t, uint(5), manifest.ID)
	assert.Equal(t, "Bench Press", manifest.Name)
	assert.Equal(t, "Chest", manifest.MuscleGroup)
	assert.Equal(t, "intermediate", manifest.Difficulty)
	assert.True(t, manifest.IsPublic)
	assert.Equal(t, "editor", manifest.ExportedBy)
	require.NotNil(t, manifest.CreatedAt)
	assert.Equal(t, "2026-01-02T10:00:00Z", *manifest.CreatedAt)
	assert.NotEmpty(t, manifest.ExportedAt)
}

func TestExportExerciseDuplicateNamesFirstWins(t *testing.T) {
	dir := t.TempDir()

	exercise := models.Exercise{Model: gorm.Model{ID: 2}, Name: "Deadlift", MuscleGroup: "Back"}

	attachments := []models.Attachment{
		{OriginalFilename: "setup.png", FilePath: writeTempFile(t, dir, "first.png", "first upload")},
		{OriginalFilename: "setup.png", FilePath: writeTempFile(t, dir, "second.png", "second upload")},
	}

	data, err := ExportExercise(exercise, attachments, "editor")
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make(map[string]int)
	for _, file := range reader.File {
		names[file.Name]++
	}

	assert.Equal(t, 1, names["attachments/setup.png"], "colliding names must produce a single entry")

	entries := readArchive(t, data)
	assert.Equal(t, []byte("first upload"), entries["attachments/setup.png"])
}

func TestExportExerciseMissingFileKeptInManifestList(t *testing.T) {
	dir := t.TempDir()

	exercise := models.Exercise{Model: gorm.Model{ID: 1}, Name: "Squat", MuscleGroup: "Legs"}

	attachments := []models.Attachment{
		{OriginalFilename: "present.txt", FilePath: writeTempFile(t, dir, "p.txt", "here")},
		{OriginalFilename: "gone.txt", FilePath: filepath.Join(dir, "does-not-exist.txt")},
	}

	data, err := ExportExercise(exercise, attachments, "editor")
	require.NoError(t, err)

	entries := readArchive(t, data)
	assert.Contains(t, entries, "attachments/present.txt")
	assert.NotContains(t, entries, "attachments/gone.txt")
}

func TestExportWorkoutRoundTrip(t *testing.T) {
	dir := t.TempDir()

	workout := models.Workout{
		Model:       gorm.Model{ID: 9, CreatedAt: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)},
		Date:        datatypes.Date(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		WorkoutType: "Strength",
		Duration:    intPtr(75),
		Notes:       "Heavy day",
		Owner:       models.User{Model: gorm.Model{ID: 2}, Username: "editor"},
		WorkoutExercises: []models.WorkoutExercise{
			// Deliberately out of display order
			{
				ExerciseID: 20,
				Sets:       4, Reps: 8, Weight: floatPtr(60), Position: 2,
				Exercise: models.Exercise{Name: "Overhead Press", MuscleGroup: "Shoulders", Equipment: "Barbell"},
			},
			{
				ExerciseID: 10,
				Sets:       3, Reps: 10, Weight: floatPtr(100), Duration: intPtr(45), Distance: floatPtr(0.5), Position: 1,
				Notes:    "paused reps",
				Exercise: models.Exercise{Name: "Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"},
			},
		},
	}

	attachmentsByExercise := map[uint][]models.Attachment{
		10: {{OriginalFilename: "grip.png", FilePath: writeTempFile(t, dir, "grip.png", "grip")}},
		20: {{OriginalFilename: "grip.png", FilePath: writeTempFile(t, dir, "grip2.png", "other grip")}},
	}

	data, err := ExportWorkout(workout, attachmentsByExercise)
	require.NoError(t, err)

	entries := readArchive(t, data)
	require.Contains(t, entries, "workout.json")

	// Same original filename on two exercises must not collide
	assert.Equal(t, []byte("grip"), entries["attachments/10_grip.png"])
	assert.Equal(t, []byte("other grip"), entries["attachments/20_grip.png"])

	var manifest WorkoutManifest
	require.NoError(t, json.Unmarshal(entries["workout.json"], &manifest))

	assert.Equal(t, uint(9), manifest.ID)
	assert.Equal(t, "2026-03-01", manifest.Date)
	assert.Equal(t, "Strength", manifest.WorkoutType)
	assert.Equal(t, 75, *manifest.Duration)
	assert.Equal(t, "editor", manifest.Owner.Username)
	assert.Equal(t, 2, manifest.TotalExercises)
	require.Len(t, manifest.Exercises, 2)

	// Ascending display order, every stored value reproduced
	first := manifest.Exercises[0]
	assert.Equal(t, uint(10), first.ExerciseID)
	assert.Equal(t, "Bench Press", first.Name)
	assert.Equal(t, 3, first.Sets)
	assert.Equal(t, 10, first.Reps)
	assert.Equal(t, 100.0, *first.Weight)
	assert.Equal(t, 45, *first.Duration)
	assert.Equal(t, 0.5, *first.Distance)
	assert.Equal(t, "paused reps", first.Notes)
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, []string{"grip.png"}, first.Attachments)

	second := manifest.Exercises[1]
	assert.Equal(t, uint(20), second.ExerciseID)
	assert.Equal(t, 2, second.Order)
	assert.Nil(t, second.Duration)
	assert.Nil(t, second.Distance)
}

func TestExportWorkoutNullableFields(t *testing.T) {
	workout := models.Workout{
		Model:       gorm.Model{ID: 3},
		Date:        datatypes.Date(time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)),
		WorkoutType: "Cardio",
		Owner:       models.User{Model: gorm.Model{ID: 1}, Username: "viewer"},
		WorkoutExercises: []models.WorkoutExercise{
			{ExerciseID: 7, Sets: 1, Reps: 1, Position: 1, Exercise: models.Exercise{Name: "Running"}},
		},
	}

	data, err := ExportWorkout(workout, nil)
	require.NoError(t, err)

	var manifest WorkoutManifest
	entries := readArchive(t, data)
	require.NoError(t, json.Unmarshal(entries["workout.json"], &manifest))

	assert.Nil(t, manifest.Duration)
	require.Len(t, manifest.Exercises, 1)
	assert.Nil(t, manifest.Exercises[0].Weight)
	assert.Empty(t, manifest.Exercises[0].Attachments)
}

func TestArchiveNames(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^exercise_12_\d{8}_\d{6}\.zip$`), ExerciseArchiveName(12))
	assert.Regexp(t, regexp.MustCompile(`^workout_export_7_\d{8}_\d{6}\.zip$`), WorkoutArchiveName(7))
}
