package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/thehaffk/WorkoutTracker/db"
	"github.com/thehaffk/WorkoutTracker/internal/guard"
	"github.com/thehaffk/WorkoutTracker/internal/models"
	"github.com/thehaffk/WorkoutTracker/internal/storage"
	"gorm.io/gorm"
)

type AttachmentResponse struct {
	ID               uint   `json:"id"`
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
	MimeType         string `json:"mime_type"`
	ExerciseID       *uint  `json:"exercise_id"`
}

func attachmentResponse(attachment models.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:               attachment.ID,
		OriginalFilename: attachment.OriginalFilename,
		FileSize:         attachment.FileSize,
		MimeType:         attachment.MimeType,
		ExerciseID:       attachment.ExerciseID,
	}
}

// UploadDir resolves the attachment directory, defaulting to ./uploads.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

func UploadAttachment(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	exercise, ok := findExercise(ctx)
	if !ok {
		return
	}

	// Uploading requires write access unless the exercise is public.
	if !exercise.IsPublic && !guard.Authorize(actor, guard.ActionUpdate, exerciseTarget(exercise)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to attach files to this exercise"})
		return
	}

	fileHeader, err := ctx.FormFile("file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file found in the request"})
		return
	}

	if fileHeader.Filename == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	attachment, err := storage.Store(db.DB, UploadDir(), actor.ID, exercise.ID, storage.Upload{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
		Content:  file,
	})

	if err != nil {
		var unsupported *storage.UnsupportedTypeError
		var tooLarge *storage.FileTooLargeError
		var quota *storage.QuotaExceededError

		switch {
		case errors.As(err, &unsupported):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &tooLarge):
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.As(err, &quota):
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to store attachment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, attachmentResponse(*attachment))
}

// ListAttachments returns every attachment on an exercise, oldest first.
func ListAttachments(ctx *gin.Context) {
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

	var attachments []models.Attachment

	if err := db.DB.Where("exercise_id = ?", exercise.ID).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		log.Printf("Failed to fetch attachments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachments"})
		return
	}

	response := make([]AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		response = append(response, attachmentResponse(attachment))
	}

	ctx.JSON(http.StatusOK, gin.H{"attachments": response})
}

func DeleteAttachment(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var attachment models.Attachment

	if err := db.DB.First(&attachment, ctx.Param("attachment_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		} else {
			log.Printf("Failed to fetch attachment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachment"})
		}
		return
	}

	if !guard.Authorize(actor, guard.ActionDelete, guard.OwnedBy(attachment.OwnerID)) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the owner or an admin may delete this attachment"})
		return
	}

	warning, err := storage.Delete(db.DB, &attachment)

	if err != nil {
		log.Printf("Failed to delete attachment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attachment"})
		return
	}

	response := gin.H{"message": fmt.Sprintf("File %q deleted", attachment.OriginalFilename)}
	if warning != "" {
		response["warning"] = warning
	}

	ctx.JSON(http.StatusOK, response)
}

func DownloadAttachment(ctx *gin.Context) {
	actor, _, err := currentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var attachment models.Attachment

	if err := db.DB.Preload("Exercise").First(&attachment, ctx.Param("attachment_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		} else {
			log.Printf("Failed to fetch attachment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachment"})
		}
		return
	}

	target := guard.OwnedBy(attachment.OwnerID)
	if attachment.Exercise != nil && attachment.Exercise.IsPublic {
		target.Public = true
	}

	if !guard.Authorize(actor, guard.ActionRead, target) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this attachment"})
		return
	}

	if _, err := os.Stat(attachment.FilePath); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "The stored file is missing"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.OriginalFilename))
	ctx.Header("Content-Type", attachment.MimeType)
	ctx.File(attachment.FilePath)
}
