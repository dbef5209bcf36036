package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/thehaffk/WorkoutTracker/internal/models"
)

// ExerciseManifest is the exercise.json descriptor at the root of an
// exercise export archive.
type ExerciseManifest struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	MuscleGroup string  `json:"muscle_group"`
	Equipment   string  `json:"equipment"`
	Difficulty  string  `json:"difficulty"`
	IsPublic    bool    `json:"is_public"`
	CreatedAt   *string `json:"created_at"`
	ExportedAt  string  `json:"exported_at"`
	ExportedBy  string  `json:"exported_by"`
}

// WorkoutManifest is the workout.json descriptor at the root of a workout
// export archive.
type WorkoutManifest struct {
	ID             uint               `json:"id"`
	Date           string             `json:"date"`
	WorkoutType    string             `json:"workout_type"`
	Duration       *int               `json:"duration"`
	Notes          string             `json:"notes"`
	Owner          ManifestOwner      `json:"owner"`
	Exercises      []ManifestExercise `json:"exercises"`
	CreatedAt      *string            `json:"created_at"`
	TotalExercises int                `json:"total_exercises"`
}

type ManifestOwner struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ManifestExercise is one performed exercise joined with its catalog entry.
type ManifestExercise struct {
	ExerciseID  uint     `json:"exercise_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MuscleGroup string   `json:"muscle_group"`
	Equipment   string   `json:"equipment"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Weight      *float64 `json:"weight"`
	Duration    *int     `json:"duration"`
	Distance    *float64 `json:"distance"`
	Notes       string   `json:"notes"`
	Order       int      `json:"order"`
	Attachments []string `json:"attachments"`
}

// ExportExercise bundles the exercise manifest and its attachment files into
// a ZIP byte stream. Attachments are stored under attachments/ by original
// filename; when two attachments share an original name the first one wins,
// the same collision policy workout exports apply. Attachment rows whose
// physical file is missing are listed in the manifest but skipped from the
// archive body.
func ExportExercise(exercise models.Exercise, attachments []models.Attachment, exportedBy string) ([]byte, error) {
	manifest := ExerciseManifest{
		ID:          exercise.ID,
		Name:        exercise.Name,
		Description: exercise.Description,
		MuscleGroup: exercise.MuscleGroup,
		Equipment:   exercise.Equipment,
		Difficulty:  exercise.Difficulty,
		IsPublic:    exercise.IsPublic,
		CreatedAt:   isoTime(exercise.CreatedAt),
		ExportedAt:  time.Now().Format(time.RFC3339),
		ExportedBy:  exportedBy,
	}

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	if err := writeManifest(zipWriter, "exercise.json", manifest); err != nil {
		return nil, err
	}

	written := make(map[string]bool)

	for _, attachment := range attachments {
		name := "attachments/" + attachment.OriginalFilename
		if written[name] {
			continue
		}
		written[name] = true

		if err := writeFileEntry(zipWriter, name, attachment.FilePath); err != nil {
			return nil, err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportWorkout bundles the workout manifest and the attachment files of
// every exercise performed in it. Exercises appear in ascending display
// order; archive entries are named <exercise_id>_<original_filename> to
// avoid cross-exercise collisions.
func ExportWorkout(workout models.Workout, attachmentsByExercise map[uint][]models.Attachment) ([]byte, error) {
	entries := make([]models.WorkoutExercise, len(workout.WorkoutExercises))
	copy(entries, workout.WorkoutExercises)

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})

	manifest := WorkoutManifest{
		ID:          workout.ID,
		Date:        time.Time(workout.Date).Format("2006-01-02"),
		WorkoutType: workout.WorkoutType,
		Duration:    workout.Duration,
		Notes:       workout.Notes,
		Owner: ManifestOwner{
			ID:       workout.Owner.ID,
			Username: workout.Owner.Username,
		},
		Exercises:      make([]ManifestExercise, 0, len(entries)),
		CreatedAt:      isoTime(workout.CreatedAt),
		TotalExercises: len(entries),
	}

	for _, we := range entries {
		attachments := attachmentsByExercise[we.ExerciseID]

		names := make([]string, 0, len(attachments))
		for _, attachment := range attachments {
			names = append(names, attachment.OriginalFilename)
		}

		manifest.Exercises = append(manifest.Exercises, ManifestExercise{
			ExerciseID:  we.ExerciseID,
			Name:        we.Exercise.Name,
			Description: we.Exercise.Description,
			MuscleGroup: we.Exercise.MuscleGroup,
			Equipment:   we.Exercise.Equipment,
			Sets:        we.Sets,
			Reps:        we.Reps,
			Weight:      we.Weight,
			Duration:    we.Duration,
			Distance:    we.Distance,
			Notes:       we.Notes,
			Order:       we.Position,
			Attachments: names,
		})
	}

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	if err := writeManifest(zipWriter, "workout.json", manifest); err != nil {
		return nil, err
	}

	written := make(map[string]bool)

	for _, we := range entries {
		for _, attachment := range attachmentsByExercise[we.ExerciseID] {
			name := fmt.Sprintf("attachments/%d_%s", we.ExerciseID, attachment.OriginalFilename)
			if written[name] {
				continue
			}
			written[name] = true

			if err := writeFileEntry(zipWriter, name, attachment.FilePath); err != nil {
				return nil, err
			}
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExerciseArchiveName returns the download filename for an exercise export.
func ExerciseArchiveName(exerciseID uint) string {
	return fmt.Sprintf("exercise_%d_%s.zip", exerciseID, time.Now().Format("20060102_150405"))
}

// WorkoutArchiveName returns the download filename for a workout export.
func WorkoutArchiveName(workoutID uint) string {
	return fmt.Sprintf("workout_export_%d_%s.zip", workoutID, time.Now().Format("20060102_150405"))
}

func writeManifest(zipWriter *zip.Writer, name string, manifest interface{}) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}

	entry, err := zipWriter.Create(name)
	if err != nil {
		return err
	}

	_, err = entry.Write(data)
	return err
}

// writeFileEntry copies a stored file into the archive. Missing files are
// skipped: an attachment row without its physical file is a tolerated
// partial-storage failure.
func writeFileEntry(zipWriter *zip.Writer, name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	entry, err := zipWriter.Create(name)
	if err != nil {
		return err
	}

	_, err = entry.Write(data)
	return err
}

func isoTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
