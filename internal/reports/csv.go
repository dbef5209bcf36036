package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// Spreadsheet tools keyed to comma-decimal locales split on semicolons, and
// expect BOM-tagged UTF-8. Numbers still use the point decimal separator,
// an accepted inconsistency.
const (
	csvDelimiter = ';'
	utf8BOM      = "\ufeff"
	csvDateForm  = "02.01.2006"
)

var volumeHeader = []string{"Workout Type", "Total Workouts", "Total Duration (min)", "Total Exercises", "Total Weight (kg)"}

var recordsHeader = []string{"Date", "Exercise", "Max Weight (kg)", "Sets", "Reps"}

// RenderVolumeCSV serializes volume report rows in the fixed column order.
func RenderVolumeCSV(rows []VolumeRow) []byte {
	records := make([][]string, 0, len(rows))

	for _, row := range rows {
		records = append(records, []string{
			row.WorkoutType,
			strconv.Itoa(row.TotalWorkouts),
			strconv.Itoa(row.TotalDuration),
			strconv.Itoa(row.TotalExercises),
			fmt.Sprintf("%.2f", row.TotalWeight),
		})
	}

	return renderCSV(volumeHeader, records)
}

// RenderRecordsCSV serializes personal-record rows in the fixed column order.
func RenderRecordsCSV(rows []RecordRow) []byte {
	records := make([][]string, 0, len(rows))

	for _, row := range rows {
		records = append(records, []string{
			row.Date.Format(csvDateForm),
			row.ExerciseName,
			fmt.Sprintf("%.2f", row.MaxWeight),
			strconv.Itoa(row.Sets),
			strconv.Itoa(row.Reps),
		})
	}

	return renderCSV(recordsHeader, records)
}

func renderCSV(header []string, records [][]string) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	writer := csv.NewWriter(&buf)
	writer.Comma = csvDelimiter

	writer.Write(header)
	for _, record := range records {
		writer.Write(record)
	}
	writer.Flush()

	return buf.Bytes()
}
