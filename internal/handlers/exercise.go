package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thehaffk/WorkoutTracker/db"
	"github.com/thehaffk/WorkoutTracker/internal/guard"
	"github.com/thehaffk/WorkoutTracker/internal/models"
	"gorm.io/gorm"
)

type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscle_group" binding:"required"`
	Equipment   string `json:"equipment"`
	Difficulty  string `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	IsPublic    bool   `json:"is_public"`
}

type UpdateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscle_group" binding:"required"`
	Equipment   string `json:"equipment"`
	Difficulty  string `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	IsPublic    bool   `json:"is_public"`
}

type ExerciseResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
	Difficulty  string `json:"difficulty"`
	IsPublic    bool   `json:"is_public"`
	OwnerID     *uint  `json:"owner_id"`
}

func exerciseResponse(exercise models.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          exercise.ID,
		Name:        exercise.Name,
		Description: exercise.Description,
		MuscleGroup: exercise.MuscleGroup,
		Equipment:   exercise.Equipment,
		Difficulty:  exercise.Difficulty,
		IsPublic:    exercise.IsPublic,
		OwnerID:     exercise.OwnerID,
	}
}

func exerciseTarget(exercise models.Exercise) guard.Target {
	return guard.Target{OwnerID: exercise.OwnerID, Public: exercise.IsPublic}
}

// findExercise loads an exercise or writes the appropriate error response.
func findExercise(ctx *gin.Context) (models.Exercise, bool) {
	var exercise models.Exercise

	if err := db.DB.First(&exercise, ctx.Param("exercise_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		} else {
			log.Printf("Failed to fetch exercise: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exercise"})
		}
		return models.Exercise{}, false
	}

	return exercise, true
}

func ListExercises(ctx *gin.Context) {
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

	query := db.DB.Model(&models.Exercise{}).
		Where("is_public = ? OR owner_id = ?", true, actor.ID)

	if search := ctx.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if muscleGroup := ctx.Query("muscle_group"); muscleGroup != "" {
		query = query.Where("muscle_group = ?", muscleGroup)
	}

	if difficulty := ctx.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count exercises: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exercises"})
		return
	}

	var exercises []models.Exercise

	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&exercises).Error; err != nil {
		log.Printf("Failed to fetch exercises: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exercises"})
		return
	}

	response := make([]ExerciseResponse, 0, len(exercises))
	for _, exercise := range exercises {
		response = append(response, exerciseResponse(exercise))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"exercises": response,
		"page":      page,
		"per_page":  perPage,
		"total":     total,
	})
}

func GetExercise(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

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

	ctx.JSON(http.StatusOK, exerciseResponse(exercise))
}

func CreateExercise(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !guard.Authorize(actor, guard.ActionCreate, guard.Target{}) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only editors and admins may create exercises"})
		return
	}

	var req CreateExerciseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := actor.ID
	exercise := models.Exercise{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		Difficulty:  req.Difficulty,
		IsPublic:    req.IsPublic,
		OwnerID:     &ownerID,
	}

	if err := db.DB.Create(&exercise).Error; err != nil {
		log.Printf("Failed to create exercise: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}

	ctx.JSON(http.StatusCreated, exerciseResponse(exercise))
}

func UpdateExercise(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	exercise, ok := findExercise(ctx)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionUpdate, exerciseTarget(exercise)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this exercise"})
		return
	}

	var req UpdateExerciseRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exercise.Name = req.Name
	exercise.Description = req.Description
	exercise.MuscleGroup = req.MuscleGroup
	exercise.Equipment = req.Equipment
	exercise.Difficulty = req.Difficulty
	exercise.IsPublic = req.IsPublic

	if err := db.DB.Save(&exercise).Error; err != nil {
		log.Printf("Failed to update exercise: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update exercise"})
		return
	}

	ctx.JSON(http.StatusOK, exerciseResponse(exercise))
}

func DeleteExercise(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	exercise, ok := findExercise(ctx)
	if !ok {
		return
	}

	if !guard.Authorize(actor, guard.ActionDelete, exerciseTarget(exercise)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this exercise"})
		return
	}

	var references int64

	if err := db.DB.Model(&models.WorkoutExercise{}).
		Where("exercise_id = ?", exercise.ID).
		Count(&references).Error; err != nil {
		log.Printf("Failed to count exercise references: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exercise"})
		return
	}

	if references > 0 {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Exercise cannot be deleted because it is used in workouts"})
		return
	}

	if err := db.DB.Delete(&exercise).Error; err != nil {
		log.Printf("Failed to delete exercise: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exercise"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
