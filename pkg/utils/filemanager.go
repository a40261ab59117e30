// =============================================================================
// AVC Purchase-Order Processor - File Manager Utilities
// =============================================================================
//
// This module contains the filesystem plumbing shared by the pipeline:
//   - Directory creation for output locations
//   - Input filename normalization (users type a bare filename, the file
//     lives in their Downloads folder)
//   - File existence and modification-time helpers used for master-file
//     staleness reporting
//   - The run timestamp used in output filenames and audit log lines
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout is the layout used for output filenames and audit log
// entries: MMDDYYYYHHMMSS.
const TimestampLayout = "01022006150405"

// Timestamp returns the current time formatted as MMDDYYYYHHMMSS.
func Timestamp() string {
	return time.Now().Format(TimestampLayout)
}

// EnsureDir creates a directory (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ModTime returns the last-modified timestamp of a file.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}

// AgeInDays returns the age of a timestamp relative to now, in whole days.
func AgeInDays(now, t time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// NormalizeInputFilename turns whatever the user typed into an absolute path
// inside the input directory.
//
// Users typically paste either a bare filename ("po_batch"), a filename with
// extension ("po_batch.csv"), or a full path copied from a file dialog. The
// directory portion is discarded, a .csv extension is appended when missing,
// and the result is joined with the configured input directory.
func NormalizeInputFilename(inputDir, filename string) string {
	cleaned := filename

	// Strip any directory portion. Input files always come from the
	// configured input directory regardless of where the user browsed.
	cleaned = filepath.Base(filepath.ToSlash(cleaned))

	if !strings.HasSuffix(strings.ToLower(cleaned), ".csv") {
		cleaned += ".csv"
	}

	return filepath.Join(inputDir, cleaned)
}

// DefaultDownloadsDir returns the user's Downloads directory, which is where
// vendor batch files land after export. Falls back to the current directory
// when the home directory cannot be resolved.
func DefaultDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
