package parser

import (
	"errors"
	"fmt"
	"time"

	"github.com/nibzard/taskline/internal/task"
)

// StorageLayout is the date layout accepted in command payloads.
const StorageLayout = "2006-01-02 1504"

// Human-readable patterns used in error messages.
const (
	StoragePattern = "yyyy-MM-dd HHmm"
	DisplayPattern = "MMM dd yyyy HHmm"
)

// ErrInvalidDate is returned when a date does not match the expected pattern.
var ErrInvalidDate = errors.New("invalid date format")

// ParseStorageDate parses a "yyyy-MM-dd HHmm" date. Input must be in
// canonical form (zero-padded, 24-hour clock).
func ParseStorageDate(s string) (time.Time, error) {
	return parseStrict(s, StorageLayout, StoragePattern)
}

// ParseDisplayDate parses a "MMM dd yyyy HHmm" date as produced by the
// canonical render.
func ParseDisplayDate(s string) (time.Time, error) {
	return parseStrict(s, task.DisplayLayout, DisplayPattern)
}

// ToDisplay converts a storage-format date to display format.
func ToDisplay(s string) (string, error) {
	t, err := ParseStorageDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(task.DisplayLayout), nil
}

// ToStorage converts a display-format date back to storage format.
func ToStorage(s string) (string, error) {
	t, err := ParseDisplayDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(StorageLayout), nil
}

func parseStrict(s, layout, pattern string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	// time.Parse tolerates unpadded hours and any letter case in month
	// names; only the canonical spelling round-trips.
	if err != nil || t.Format(layout) != s {
		return time.Time{}, fmt.Errorf("%w: %q, expected %s", ErrInvalidDate, s, pattern)
	}
	return t, nil
}
