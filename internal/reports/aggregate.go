package reports

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/thehaffk/WorkoutTracker/internal/models"
)

const dateLayout = "2006-01-02"

// DefaultRangeDays is the report window applied when no dates are supplied.
const DefaultRangeDays = 30

// InvalidDateError signals a date filter that is not in YYYY-MM-DD form.
// Callers must re-prompt instead of silently falling back to the default range.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Value)
}

// ParseDateRange resolves the inclusive report window. Empty values default to
// [today-30d, today]. Defaults are truncated to midnight so that workouts
// dated exactly on a boundary day pass the date comparison; workout dates
// carry no time of day.
func ParseDateRange(fromStr, toStr string) (from, to time.Time, err error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if fromStr == "" {
		from = today.AddDate(0, 0, -DefaultRangeDays)
	} else {
		from, err = time.Parse(dateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, &InvalidDateError{Value: fromStr}
		}
	}

	if toStr == "" {
		to = today
	} else {
		to, err = time.Parse(dateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, &InvalidDateError{Value: toStr}
		}
	}

	return from, to, nil
}

// VolumeRow is one aggregate line of the volume report, covering every
// workout of a single type within the window.
type VolumeRow struct {
	WorkoutType    string  `json:"workout_type"`
	TotalWorkouts  int     `json:"total_workouts"`
	TotalDuration  int     `json:"total_duration"`
	TotalExercises int     `json:"total_exercises"`
	TotalWeight    float64 `json:"total_weight"`
}

// VolumeReport groups the given workouts by type and computes, per group:
// workout count, summed duration in minutes, summed sets*reps, and summed
// sets*reps*weight in kilograms. Nil durations and weights contribute zero.
// WorkoutExercises must be preloaded on every workout.
func VolumeReport(workouts []models.Workout) []VolumeRow {
	groups := make(map[string]*VolumeRow)

	for _, workout := range workouts {
		row, ok := groups[workout.WorkoutType]
		if !ok {
			row = &VolumeRow{WorkoutType: workout.WorkoutType}
			groups[workout.WorkoutType] = row
		}

		row.TotalWorkouts++

		if workout.Duration != nil {
			row.TotalDuration += *workout.Duration
		}

		for _, we := range workout.WorkoutExercises {
			row.TotalExercises += we.Sets * we.Reps

			if we.Weight != nil {
				row.TotalWeight += float64(we.Sets) * float64(we.Reps) * *we.Weight
			}
		}
	}

	rows := make([]VolumeRow, 0, len(groups))

	for _, row := range groups {
		row.TotalWeight = round2(row.TotalWeight)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].WorkoutType < rows[j].WorkoutType
	})

	return rows
}

// RecordRow is one personal-record line: the heaviest weight ever lifted for
// an exercise, together with the set/rep scheme that achieved it.
type RecordRow struct {
	ExerciseID   uint      `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Date         time.Time `json:"date"`
	MaxWeight    float64   `json:"max_weight"`
	Sets         int       `json:"sets"`
	Reps         int       `json:"reps"`
}

// RecordsReport groups the given performances by exercise and emits, per
// exercise, the maximum weight lifted and the highest-rep performance at that
// weight. Nil weights count as zero. Workout and Exercise must be preloaded
// on every entry. Rows are sorted by date, newest first.
func RecordsReport(entries []models.WorkoutExercise) []RecordRow {
	type group struct {
		name string
		best models.WorkoutExercise
	}

	groups := make(map[uint]*group)

	for _, entry := range entries {
		g, ok := groups[entry.ExerciseID]
		if !ok {
			groups[entry.ExerciseID] = &group{name: entry.Exercise.Name, best: entry}
			continue
		}

		w := weightOf(entry)
		best := weightOf(g.best)

		// Heavier wins; at equal weight the higher rep count wins.
		if w > best || (w == best && entry.Reps > g.best.Reps) {
			g.best = entry
		}
	}

	rows := make([]RecordRow, 0, len(groups))

	for id, g := range groups {
		rows = append(rows, RecordRow{
			ExerciseID:   id,
			ExerciseName: g.name,
			Date:         time.Time(g.best.Workout.Date),
			MaxWeight:    round2(weightOf(g.best)),
			Sets:         g.best.Sets,
			Reps:         g.best.Reps,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].ExerciseName < rows[j].ExerciseName
	})

	return rows
}

func weightOf(we models.WorkoutExercise) float64 {
	if we.Weight == nil {
		return 0
	}
	return *we.Weight
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
