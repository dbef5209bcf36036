package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thehaffk/WorkoutTracker/internal/models"
)

const (
	MaxFileSize  int64 = 20 * 1024 * 1024  // Per file
	MaxTotalSize int64 = 100 * 1024 * 1024 // Per exercise, across all attachments
)

var allowedExtensionList = []string{"png", "jpg", "jpeg", "pdf", "txt", "csv", "json"}

var allowedExtensions = func() map[string]bool {
	m := make(map[string]bool, len(allowedExtensionList))
	for _, ext := range allowedExtensionList {
		m[ext] = true
	}
	return m
}()

// Upload describes an incoming file before it is persisted.
type Upload struct {
	Filename string
	MimeType string
	Size     int64
	Content  io.Reader
}

// The quota check-then-write sequence is serialized per exercise so two
// concurrent uploads cannot both pass the check and jointly exceed the quota.
var (
	exerciseLocks   = make(map[uint]*sync.Mutex)
	exerciseLocksMu sync.Mutex
)

func lockExercise(exerciseID uint) *sync.Mutex {
	exerciseLocksMu.Lock()
	defer exerciseLocksMu.Unlock()

	mu, ok := exerciseLocks[exerciseID]
	if !ok {
		mu = &sync.Mutex{}
		exerciseLocks[exerciseID] = mu
	}

	return mu
}

// AllowedFile reports whether the filename carries an allow-listed extension,
// case-insensitively.
func AllowedFile(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return allowedExtensions[strings.ToLower(ext)]
}

// GenerateStorageName builds a collision-resistant on-disk name that keeps the
// original extension: <uuid8>_<YYYYMMDD_HHMMSS><ext>.
func GenerateStorageName(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	token := uuid.NewString()[:8]
	timestamp := time.Now().Format("20060102_150405")

	return fmt.Sprintf("%s_%s%s", token, timestamp, ext)
}

// CheckFileSize validates the per-file limit.
func CheckFileSize(size int64) error {
	if size > MaxFileSize {
		return &FileTooLargeError{Size: size}
	}
	return nil
}

// CheckQuota validates the cumulative per-exercise limit. Landing exactly on
// the limit is accepted.
func CheckQuota(currentTotal, size int64) error {
	if currentTotal+size > MaxTotalSize {
		return &QuotaExceededError{CurrentTotal: currentTotal, Size: size}
	}
	return nil
}

// TotalSize sums the stored byte sizes of every attachment on the exercise.
// It is recomputed from the database on every call; quota decisions must not
// rely on a cached figure.
func TotalSize(database *gorm.DB, exerciseID uint) (int64, error) {
	var total int64

	err := database.Model(&models.Attachment{}).
		Where("exercise_id = ?", exerciseID).
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&total).Error

	return total, err
}

// Store validates the upload, writes the file under dir and creates the
// attachment row. The file is written first and removed again if the row
// insert fails, so a failed store leaves no orphan on disk.
func Store(database *gorm.DB, dir string, ownerID uint, exerciseID uint, upload Upload) (*models.Attachment, error) {
	if !AllowedFile(upload.Filename) {
		return nil, &UnsupportedTypeError{Filename: upload.Filename}
	}

	if err := CheckFileSize(upload.Size); err != nil {
		return nil, err
	}

	mu := lockExercise(exerciseID)
	mu.Lock()
	defer mu.Unlock()

	currentTotal, err := TotalSize(database, exerciseID)
	if err != nil {
		return nil, err
	}

	if err := CheckQuota(currentTotal, upload.Size); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	storageName := GenerateStorageName(upload.Filename)
	filePath := filepath.Join(dir, storageName)

	out, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}

	written, err := io.Copy(out, upload.Content)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}

	attachment := models.Attachment{
		Filename:         storageName,
		OriginalFilename: upload.Filename,
		FilePath:         filePath,
		FileSize:         written,
		MimeType:         upload.MimeType,
		ExerciseID:       &exerciseID,
		OwnerID:          ownerID,
	}

	if err := database.Create(&attachment).Error; err != nil {
		os.Remove(filePath)
		return nil, err
	}

	return &attachment, nil
}

// Delete removes the attachment row and its physical file. A failed file
// removal is logged and reported back as a warning; the row is deleted
// regardless, leaving an orphan file as a recoverable inconsistency.
func Delete(database *gorm.DB, attachment *models.Attachment) (warning string, err error) {
	if removeErr := os.Remove(attachment.FilePath); removeErr != nil && !os.IsNotExist(removeErr) {
		log.Printf("Failed to remove attachment file %s: %v", attachment.FilePath, removeErr)
		warning = "the stored file could not be removed from disk, the record was deleted anyway"
	}

	if err := database.Delete(attachment).Error; err != nil {
		return warning, err
	}

	return warning, nil
}
