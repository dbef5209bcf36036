package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thehaffk/WorkoutTracker/db"
	"github.com/thehaffk/WorkoutTracker/internal/models"
	"github.com/thehaffk/WorkoutTracker/internal/reports"
)

// Reports are always computed over the requesting user's own workouts,
// fetched fresh per request; there is no caching layer.

func VolumeReportHandler(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	from, to, err := reports.ParseDateRange(ctx.Query("date_from"), ctx.Query("date_to"))

	if err != nil {
		var invalid *reports.InvalidDateError
		if errors.As(err, &invalid) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to parse report range: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	var workouts []models.Workout

	if err := db.DB.Preload("WorkoutExercises").
		Where("owner_id = ? AND date >= ? AND date <= ?", actor.ID, from, to).
		Find(&workouts).Error; err != nil {
		log.Printf("Failed to fetch workouts for volume report: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	rows := reports.VolumeReport(workouts)

	if ctx.Query("export") == "csv" {
		filename := fmt.Sprintf("workout_volume_%s_%s.csv", from.Format(dateLayout), to.Format(dateLayout))
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", reports.RenderVolumeCSV(rows))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date_from": from.Format(dateLayout),
		"date_to":   to.Format(dateLayout),
		"rows":      rows,
	})
}

func RecordsReportHandler(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	from, to, err := reports.ParseDateRange(ctx.Query("date_from"), ctx.Query("date_to"))

	if err != nil {
		var invalid *reports.InvalidDateError
		if errors.As(err, &invalid) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to parse report range: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	query := db.DB.Preload("Workout").Preload("Exercise").
		Joins("JOIN workouts ON workouts.id = workout_exercises.workout_id").
		Where("workouts.owner_id = ? AND workouts.date >= ? AND workouts.date <= ? AND workouts.deleted_at IS NULL", actor.ID, from, to)

	if exerciseID := ctx.Query("exercise_id"); exerciseID != "" {
		query = query.Where("workout_exercises.exercise_id = ?", exerciseID)
	}

	var entries []models.WorkoutExercise

	if err := query.Find(&entries).Error; err != nil {
		log.Printf("Failed to fetch performances for records report: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	rows := reports.RecordsReport(entries)

	if ctx.Query("export") == "csv" {
		filename := fmt.Sprintf("personal_records_%s.csv", time.Now().Format("20060102"))
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", reports.RenderRecordsCSV(rows))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date_from": from.Format(dateLayout),
		"date_to":   to.Format(dateLayout),
		"rows":      rows,
	})
}
