package storage

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"notes.txt", true},
		{"report.PDF", true},
		{"data.csv", true},
		{"plan.json", true},
		{"malware.exe", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
		{"trailing.", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedFile(tt.filename))
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	assert.NoError(t, CheckFileSize(MaxFileSize))
	assert.NoError(t, CheckFileSize(1))

	err := CheckFileSize(MaxFileSize + 1)
	require.Error(t, err)

	var tooLarge *FileTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, MaxFileSize+1, tooLarge.Size)
	assert.Contains(t, err.Error(), "20.0 MiB")
}

func TestCheckFileSizeMessageFigures(t *testing.T) {
	err := CheckFileSize(25 * 1024 * 1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "25.0 MiB")
	assert.Contains(t, err.Error(), "20.0 MiB")
}

func TestCheckQuotaBoundary(t *testing.T) {
	// Landing exactly on the 100 MiB ceiling is accepted.
	assert.NoError(t, CheckQuota(MaxTotalSize-MaxFileSize, MaxFileSize))
	assert.NoError(t, CheckQuota(0, MaxTotalSize))

	err := CheckQuota(MaxTotalSize-MaxFileSize+1, MaxFileSize)
	require.Error(t, err)

	var quota *QuotaExceededError
	require.ErrorAs(t, err, &quota)
}

func TestQuotaErrorMessageFigures(t *testing.T) {
	current := int64(90 * 1024 * 1024)
	err := CheckQuota(current, 15*1024*1024)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "90.0 MiB")  // Current total
	assert.Contains(t, msg, "100.0 MiB") // Limit
	assert.Contains(t, msg, "10.0 MiB")  // Remaining headroom
}

func TestGenerateStorageName(t *testing.T) {
	name := GenerateStorageName("My Photo.PNG")

	assert.True(t, strings.HasSuffix(name, ".png"), "extension should be preserved lowercased: %s", name)
	assert.NotContains(t, name, " ")

	other := GenerateStorageName("My Photo.PNG")
	assert.NotEqual(t, name, other, "storage names must not collide")
}

func TestUnsupportedTypeErrorListsExtensions(t *testing.T) {
	err := &UnsupportedTypeError{Filename: "malware.exe"}

	msg := err.Error()
	assert.Contains(t, msg, "malware.exe")
	for _, ext := range []string{"PNG", "JPG", "JPEG", "PDF", "TXT", "CSV", "JSON"} {
		assert.Contains(t, msg, ext)
	}
}

func TestLockExerciseReturnsSameMutex(t *testing.T) {
	a := lockExercise(42)
	b := lockExercise(42)
	c := lockExercise(43)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestLockExerciseSerializes(t *testing.T) {
	mu := lockExercise(77)

	var order []string
	done := make(chan struct{})

	mu.Lock()
	go func() {
		mu.Lock()
		order = append(order, "second")
		mu.Unlock()
		close(done)
	}()

	order = append(order, "first")
	mu.Unlock()
	<-done

	assert.Equal(t, []string{"first", "second"}, order)
}

func ExampleFileTooLargeError() {
	err := CheckFileSize(25 * 1024 * 1024)
	fmt.Println(err)
	// Output: file is too large: 25.0 MiB, the limit per file is 20.0 MiB
}
