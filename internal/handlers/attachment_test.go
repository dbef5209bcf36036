package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thehaffk/WorkoutTracker/db"
	"github.com/thehaffk/WorkoutTracker/internal/models"
	"github.com/thehaffk/WorkoutTracker/internal/types"
)

func TestListAttachments(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "lifter", types.RoleEditor)

	ownerID := owner.ID
	exercise := models.Exercise{
		Name:        "Squat",
		MuscleGroup: "Legs",
		Difficulty:  "intermediate",
		OwnerID:     &ownerID,
	}
	require.NoError(t, db.DB.Create(&exercise).Error)

	exerciseID := exercise.ID
	for _, name := range []string{"form.png", "notes.txt"} {
		attachment := models.Attachment{
			Filename:         "stored_" + name,
			OriginalFilename: name,
			FilePath:         "/tmp/" + name,
			FileSize:         10,
			ExerciseID:       &exerciseID,
			OwnerID:          owner.ID,
		}
		require.NoError(t, db.DB.Create(&attachment).Error)
	}

	ctx, recorder := testContext(t, owner)
	paramID(ctx, "exercise_id", exercise.ID)

	ListAttachments(ctx)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Attachments []AttachmentResponse `json:"attachments"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	require.Len(t, body.Attachments, 2)
	assert.Equal(t, "form.png", body.Attachments[0].OriginalFilename)
	assert.Equal(t, "notes.txt", body.Attachments[1].OriginalFilename)
	assert.NotZero(t, body.Attachments[0].ID, "the listing must expose attachment IDs for download and delete")
}

func TestListAttachmentsPrivateExerciseDeniedToStranger(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "lifter", types.RoleEditor)
	stranger := createTestUser(t, "other", types.RoleEditor)

	ownerID := owner.ID
	exercise := models.Exercise{
		Name:        "Secret Routine",
		MuscleGroup: "Back",
		Difficulty:  "advanced",
		OwnerID:     &ownerID,
	}
	require.NoError(t, db.DB.Create(&exercise).Error)

	ctx, recorder := testContext(t, stranger)
	paramID(ctx, "exercise_id", exercise.ID)

	ListAttachments(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestListAttachmentsPublicExerciseReadable(t *testing.T) {
	setupTestDB(t)

	viewer := createTestUser(t, "viewer", types.RoleViewer)

	exercise := models.Exercise{
		Name:        "Push-up",
		MuscleGroup: "Chest",
		Difficulty:  "beginner",
		IsPublic:    true,
	}
	require.NoError(t, db.DB.Create(&exercise).Error)

	ctx, recorder := testContext(t, viewer)
	paramID(ctx, "exercise_id", exercise.ID)

	ListAttachments(ctx)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
