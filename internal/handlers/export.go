package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thehaffk/WorkoutTracker/db"
	"github.com/thehaffk/WorkoutTracker/internal/archive"
	"github.com/thehaffk/WorkoutTracker/internal/guard"
	"github.com/thehaffk/WorkoutTracker/internal/models"
	"gorm.io/gorm"
)

func ExportExercise(ctx *gin.Context) {
	actor, user, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	exercise, ok := findExercise(ctx)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionRead, exerciseTarget(exercise)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this exercise"})
		return
	}

	var attachments []models.Attachment

	if err := db.DB.Where("exercise_id = ?", exercise.ID).Find(&attachments).Error; err != nil {
		log.Printf("Failed to fetch attachments for export: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export exercise"})
		return
	}

	data, err := archive.ExportExercise(exercise, attachments, user.Username)

	if err != nil {
		log.Printf("Failed to build exercise archive: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export exercise"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", archive.ExerciseArchiveName(exercise.ID)))
	ctx.Data(http.StatusOK, "application/zip", data)
}

func ExportWorkout(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var workout models.Workout

	if err := db.DB.Preload("Owner").
		Preload("WorkoutExercises", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("WorkoutExercises.Exercise").
		First(&workout, ctx.Param("workout_id")).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
		return
	}

	if !guard.Authorize(actor, guard.ActionRead, workoutTarget(workout)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to export this workout"})
		return
	}

	attachmentsByExercise := make(map[uint][]models.Attachment)

	for _, we := range workout.WorkoutExercises {
		if _, fetched := attachmentsByExercise[we.ExerciseID]; fetched {
			continue
		}

		var attachments []models.Attachment

		if err := db.DB.Where("exercise_id = ?", we.ExerciseID).Find(&attachments).Error; err != nil {
			log.Printf("Failed to fetch attachments for export: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export workout"})
			return
		}

		attachmentsByExercise[we.ExerciseID] = attachments
	}

	data, err := archive.ExportWorkout(workout, attachmentsByExercise)

	if err != nil {
		log.Printf("Failed to build workout archive: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export workout"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", archive.WorkoutArchiveName(workout.ID)))
	ctx.Data(http.StatusOK, "application/zip", data)
}
