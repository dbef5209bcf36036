package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thehaffk/WorkoutTracker/db"
	"github.com/thehaffk/WorkoutTracker/internal/middleware"
	"github.com/thehaffk/WorkoutTracker/internal/models"
	"github.com/thehaffk/WorkoutTracker/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB swaps the global connection for an in-memory database with the
// full schema migrated.
func setupTestDB(t *testing.T) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.Exercise{},
		&models.Workout{},
		&models.WorkoutExercise{},
		&models.Attachment{},
	))

	db.DB = database
}

func createTestUser(t *testing.T, username string, role types.Role) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	return user
}

// testContext builds a request context carrying an authenticated user, the
// way the auth middleware would.
func testContext(t *testing.T, user models.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})

	return ctx, recorder
}

func paramID(ctx *gin.Context, key string, id uint) {
	ctx.Params = append(ctx.Params, gin.Param{Key: key, Value: strconv.Itoa(int(id))})
}

func TestDeleteExerciseBlockedByWorkoutReferences(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "lifter", types.RoleEditor)

	ownerID := owner.ID
	exercise := models.Exercise{
		Name:        "Bench Press",
		MuscleGroup: "Chest",
		Difficulty:  "intermediate",
		OwnerID:     &ownerID,
	}
	require.NoError(t, db.DB.Create(&exercise).Error)

	workout := models.Workout{WorkoutType: "Strength", OwnerID: owner.ID}
	require.NoError(t, db.DB.Create(&workout).Error)

	entry := models.WorkoutExercise{
		WorkoutID:  workout.ID,
		ExerciseID: exercise.ID,
		Sets:       3,
		Reps:       10,
	}
	require.NoError(t, db.DB.Create(&entry).Error)

	ctx, recorder := testContext(t, owner)
	paramID(ctx, "exercise_id", exercise.ID)

	DeleteExercise(ctx)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "used in workouts")

	var count int64
	require.NoError(t, db.DB.Model(&models.Exercise{}).
		Where("id = ?", exercise.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "a referenced exercise must survive the delete attempt")
}

func TestDeleteExerciseWithoutReferences(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "lifter", types.RoleEditor)

	ownerID := owner.ID
	exercise := models.Exercise{
		Name:        "Cable Fly",
		MuscleGroup: "Chest",
		Difficulty:  "beginner",
		OwnerID:     &ownerID,
	}
	require.NoError(t, db.DB.Create(&exercise).Error)

	ctx, recorder := testContext(t, owner)
	paramID(ctx, "exercise_id", exercise.ID)

	DeleteExercise(ctx)
	ctx.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, recorder.Code)

	var count int64
	require.NoError(t, db.DB.Model(&models.Exercise{}).
		Where("id = ?", exercise.ID).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
