package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thehaffk/WorkoutTracker/db"
	"github.com/thehaffk/WorkoutTracker/internal/guard"
	"github.com/thehaffk/WorkoutTracker/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateWorkoutRequest struct {
	Date        string `json:"date" binding:"required"`
	WorkoutType string `json:"workout_type" binding:"required"`
	Duration    *int   `json:"duration"`
	Notes       string `json:"notes"`
}

type UpdateWorkoutRequest struct {
	Date        string `json:"date" binding:"required"`
	WorkoutType string `json:"workout_type" binding:"required"`
	Duration    *int   `json:"duration"`
	Notes       string `json:"notes"`
}

type AddWorkoutExerciseRequest struct {
	ExerciseID uint     `json:"exercise_id" binding:"required"`
	Sets       int      `json:"sets"`
	Reps       int      `json:"reps"`
	Weight     *float64 `json:"weight"`
	Duration   *int     `json:"duration"`
	Distance   *float64 `json:"distance"`
	Notes      string   `json:"notes"`
}

type WorkoutExerciseResponse struct {
	ID         uint     `json:"id"`
	ExerciseID uint     `json:"exercise_id"`
	Name       string   `json:"name"`
	Sets       int      `json:"sets"`
	Reps       int      `json:"reps"`
	Weight     *float64 `json:"weight"`
	Duration   *int     `json:"duration"`
	Distance   *float64 `json:"distance"`
	Notes      string   `json:"notes"`
	Order      int      `json:"order"`
}

type WorkoutResponse struct {
	ID          uint                      `json:"id"`
	Date        string                    `json:"date"`
	WorkoutType string                    `json:"workout_type"`
	Duration    *int                      `json:"duration"`
	Notes       string                    `json:"notes"`
	OwnerID     uint                      `json:"owner_id"`
	Exercises   []WorkoutExerciseResponse `json:"exercises,omitempty"`
}

const dateLayout = "2006-01-02"

func workoutResponse(workout models.Workout, withExercises bool) WorkoutResponse {
	response := WorkoutResponse{
		ID:          workout.ID,
		Date:        time.Time(workout.Date).Format(dateLayout),
		WorkoutType: workout.WorkoutType,
		Duration:    workout.Duration,
		Notes:       workout.Notes,
		OwnerID:     workout.OwnerID,
	}

	if withExercises {
		response.Exercises = make([]WorkoutExerciseResponse, 0, len(workout.WorkoutExercises))
		for _, we := range workout.WorkoutExercises {
			response.Exercises = append(response.Exercises, WorkoutExerciseResponse{
				ID:         we.ID,
				ExerciseID: we.ExerciseID,
				Name:       we.Exercise.Name,
				Sets:       we.Sets,
				Reps:       we.Reps,
				Weight:     we.Weight,
				Duration:   we.Duration,
				Distance:   we.Distance,
				Notes:      we.Notes,
				Order:      we.Position,
			})
		}
	}

	return response
}

func workoutTarget(workout models.Workout) guard.Target {
	return guard.OwnedBy(workout.OwnerID)
}

func findWorkout(ctx *gin.Context, preloadExercises bool) (models.Workout, bool) {
	var workout models.Workout

	query := db.DB
	if preloadExercises {
		query = query.Preload("WorkoutExercises", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).Preload("WorkoutExercises.Exercise")
	}

	if err := query.First(&workout, ctx.Param("workout_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
		} else {
			log.Printf("Failed to fetch workout: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workout"})
		}
		return models.Workout{}, false
	}

	return workout, true
}

func ListWorkouts(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(ctx.DefaultQuery("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	query := db.DB.Model(&models.Workout{})

	// Admins may request the cross-user listing; everyone else sees their own.
	if !(actor.Role.IsAdmin() && ctx.Query("scope") == "all") {
		query = query.Where("owner_id = ?", actor.ID)
	}

	if dateFrom := ctx.Query("date_from"); dateFrom != "" {
		parsed, err := time.Parse(dateLayout, dateFrom)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("date >= ?", parsed)
	}

	if dateTo := ctx.Query("date_to"); dateTo != "" {
		parsed, err := time.Parse(dateLayout, dateTo)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("date <= ?", parsed)
	}

	if workoutType := ctx.Query("workout_type"); workoutType != "" {
		query = query.Where("workout_type = ?", workoutType)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count workouts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workouts"})
		return
	}

	var workouts []models.Workout

	if err := query.Order("date DESC, created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&workouts).Error; err != nil {
		log.Printf("Failed to fetch workouts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workouts"})
		return
	}

	response := make([]WorkoutResponse, 0, len(workouts))
	for _, workout := range workouts {
		response = append(response, workoutResponse(workout, false))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"workouts": response,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

func GetWorkout(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workout, ok := findWorkout(ctx, true)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionRead, workoutTarget(workout)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this workout"})
		return
	}

	ctx.JSON(http.StatusOK, workoutResponse(workout, true))
}

func CreateWorkout(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateWorkoutRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	workout := models.Workout{
		Date:        datatypes.Date(date),
		WorkoutType: req.WorkoutType,
		Duration:    req.Duration,
		Notes:       req.Notes,
		OwnerID:     actor.ID,
	}

	if err := db.DB.Create(&workout).Error; err != nil {
		log.Printf("Failed to create workout: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workout"})
		return
	}

	ctx.JSON(http.StatusCreated, workoutResponse(workout, false))
}

func UpdateWorkout(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workout, ok := findWorkout(ctx, false)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionUpdate, workoutTarget(workout)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this workout"})
		return
	}

	var req UpdateWorkoutRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	workout.Date = datatypes.Date(date)
	workout.WorkoutType = req.WorkoutType
	workout.Duration = req.Duration
	workout.Notes = req.Notes

	if err := db.DB.Save(&workout).Error; err != nil {
		log.Printf("Failed to update workout: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workout"})
		return
	}

	ctx.JSON(http.StatusOK, workoutResponse(workout, false))
}

func DeleteWorkout(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workout, ok := findWorkout(ctx, false)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionDelete, workoutTarget(workout)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this workout"})
		return
	}

	// Performed exercises cascade with the workout.
	if err := db.DB.Select("WorkoutExercises").Delete(&workout).Error; err != nil {
		log.Printf("Failed to delete workout: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete workout"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AddWorkoutExercise(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workout, ok := findWorkout(ctx, false)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionUpdate, workoutTarget(workout)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this workout"})
		return
	}

	var req AddWorkoutExerciseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exercise models.Exercise

	if err := db.DB.First(&exercise, req.ExerciseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		} else {
			log.Printf("Failed to fetch exercise: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exercise"})
		}
		return
	}

	if !guard.Authorize(actor, guard.ActionRead, exerciseTarget(exercise)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this exercise"})
		return
	}

	var maxPosition int

	if err := db.DB.Model(&models.WorkoutExercise{}).
		Where("workout_id = ?", workout.ID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition).Error; err != nil {
		log.Printf("Failed to compute exercise position: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add exercise"})
		return
	}

	sets := req.Sets
	if sets < 1 {
		sets = 1
	}
	reps := req.Reps
	if reps < 1 {
		reps = 1
	}

	entry := models.WorkoutExercise{
		WorkoutID:  workout.ID,
		ExerciseID: exercise.ID,
		Sets:       sets,
		Reps:       reps,
		Weight:     req.Weight,
		Duration:   req.Duration,
		Distance:   req.Distance,
		Notes:      req.Notes,
		Position:   maxPosition + 1,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to add exercise to workout: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add exercise"})
		return
	}

	entry.Exercise = exercise

	ctx.JSON(http.StatusCreated, WorkoutExerciseResponse{
		ID:         entry.ID,
		ExerciseID: entry.ExerciseID,
		Name:       exercise.Name,
		Sets:       entry.Sets,
		Reps:       entry.Reps,
		Weight:     entry.Weight,
		Duration:   entry.Duration,
		Distance:   entry.Distance,
		Notes:      entry.Notes,
		Order:      entry.Position,
	})
}

func RemoveWorkoutExercise(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workout, ok := findWorkout(ctx, false)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionUpdate, workoutTarget(workout)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this workout"})
		return
	}

	var entry models.WorkoutExercise

	if err := db.DB.First(&entry, ctx.Param("we_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Exercise entry not found"})
		} else {
			log.Printf("Failed to fetch workout exercise: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove exercise"})
		}
		return
	}

	if entry.WorkoutID != workout.ID {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Exercise entry not found in this workout"})
		return
	}

	if err := db.DB.Delete(&entry).Error; err != nil {
		log.Printf("Failed to remove exercise from workout: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove exercise"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
