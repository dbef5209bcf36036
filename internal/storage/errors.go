package storage

import (
	"fmt"
	"strings"
)

// UnsupportedTypeError signals a rejected upload whose extension is not on the
// allow-list. Validation is by extension only; content is not inspected.
type UnsupportedTypeError struct {
	Filename string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("file type of %q is not supported, allowed types: %s",
		e.Filename, strings.ToUpper(strings.Join(allowedExtensionList, ", ")))
}

// FileTooLargeError signals a single upload above the per-file limit.
type FileTooLargeError struct {
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is too large: %.1f MiB, the limit per file is %.1f MiB",
		toMiB(e.Size), toMiB(MaxFileSize))
}

// QuotaExceededError signals that an upload would push the exercise past its
// cumulative attachment quota.
type QuotaExceededError struct {
	CurrentTotal int64
	Size         int64
}

func (e *QuotaExceededError) Error() string {
	remaining := MaxTotalSize - e.CurrentTotal
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("attachment quota exceeded: %.1f MiB already stored, the limit is %.1f MiB, %.1f MiB remaining",
		toMiB(e.CurrentTotal), toMiB(MaxTotalSize), toMiB(remaining))
}

func toMiB(bytes int64) float64 {
	return float64(bytes) / 1024 / 1024
}
