// Package parser turns command lines into structured task fields and
// reconstructs command payloads from rendered task lines.
//
// Forward anchors (command payloads):
//
//	deadline <description> /by <yyyy-MM-dd HHmm>
//	event <description> /from <yyyy-MM-dd HHmm> /to <yyyy-MM-dd HHmm>
//
// Inverse anchors (rendered lines, see package task):
//
//	(by: <MMM dd yyyy HHmm>)
//	(from: <MMM dd yyyy HHmm> to: <MMM dd yyyy HHmm>)
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/nibzard/taskline/internal/task"
)

// Payload markers accepted by the forward parser.
const (
	MarkerBy   = "/by"
	MarkerFrom = "/from"
	MarkerTo   = "/to"
)

var (
	// ErrInvalidFormat is returned when a required marker or anchor is missing.
	ErrInvalidFormat = task.ErrInvalidFormat
	// ErrInvalidNumber is returned when a task number is not an integer.
	ErrInvalidNumber = errors.New("invalid number")
)

// Split separates a command line into its lowercased keyword and its payload.
// The line is trimmed first; the payload is everything after the first run of
// whitespace and is empty when the line has a single word.
func Split(line string) (keyword, payload string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), strings.TrimLeftFunc(line[i:], unicode.IsSpace)
}

// ParseIndex converts a 1-based task number into a 0-based position.
func ParseIndex(payload string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a task number", ErrInvalidNumber, strings.TrimSpace(payload))
	}
	return n - 1, nil
}

// ParseDeadline splits "<description> /by <date>" on the first /by marker.
func ParseDeadline(payload string) (string, time.Time, error) {
	idx := strings.Index(payload, MarkerBy)
	if idx < 0 {
		return "", time.Time{}, fmt.Errorf("%w: deadline needs %q, e.g. deadline return book /by 2025-03-01 1800", ErrInvalidFormat, MarkerBy)
	}
	description := strings.TrimSpace(payload[:idx])
	if description == "" {
		return "", time.Time{}, task.ErrEmptyDescription
	}
	by, err := ParseStorageDate(strings.TrimSpace(payload[idx+len(MarkerBy):]))
	if err != nil {
		return "", time.Time{}, err
	}
	return description, by, nil
}

// ParseEvent splits "<description> /from <date> /to <date>" on the first
// /from marker, then splits the remainder on the first /to marker.
func ParseEvent(payload string) (string, time.Time, time.Time, error) {
	fromIdx := strings.Index(payload, MarkerFrom)
	if fromIdx < 0 {
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: event needs %q and %q, e.g. event trip /from 2025-04-01 0900 /to 2025-04-03 1800", ErrInvalidFormat, MarkerFrom, MarkerTo)
	}
	rest := payload[fromIdx+len(MarkerFrom):]
	toIdx := strings.Index(rest, MarkerTo)
	if toIdx < 0 {
		return "", time.Time{}, time.Time{}, fmt.Errorf("%w: event needs %q after %q", ErrInvalidFormat, MarkerTo, MarkerFrom)
	}

	description := strings.TrimSpace(payload[:fromIdx])
	if description == "" {
		return "", time.Time{}, time.Time{}, task.ErrEmptyDescription
	}
	from, err := ParseStorageDate(strings.TrimSpace(rest[:toIdx]))
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	to, err := ParseStorageDate(strings.TrimSpace(rest[toIdx+len(MarkerTo):]))
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return description, from, to, nil
}

// NewDeadline builds a deadline task from a command payload.
func NewDeadline(payload string) (task.Task, error) {
	description, by, err := ParseDeadline(payload)
	if err != nil {
		return task.Task{}, err
	}
	return task.NewDeadline(description, by)
}

// NewEvent builds an event task from a command payload.
func NewEvent(payload string) (task.Task, error) {
	description, from, to, err := ParseEvent(payload)
	if err != nil {
		return task.Task{}, err
	}
	return task.NewEvent(description, from, to)
}
