// Package command maps command lines onto task list operations.
package command

import (
	"errors"
	"fmt"

	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/task"
)

// Error conditions surfaced to the user. They alias the lower-level
// sentinels so errors.Is works across packages.
var (
	ErrEmptyDescription    = task.ErrEmptyDescription
	ErrUnrecognizedCommand = errors.New("unrecognized command")
	ErrInvalidFormat       = parser.ErrInvalidFormat
	ErrInvalidDate         = parser.ErrInvalidDate
	ErrInvalidNumber       = parser.ErrInvalidNumber
	ErrIndexOutOfRange     = task.ErrIndexOutOfRange
	ErrIO                  = errors.New("storage error")
)

// Error is a failed command. Command is the lowercased keyword.
type Error struct {
	Command string
	Err     error
}

func (e *Error) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func commandError(keyword string, err error) error {
	return &Error{Command: keyword, Err: err}
}

// UserMessage renders err as the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	keyword := ""
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		keyword = cmdErr.Command
	}

	var idxErr *task.IndexError
	switch {
	case errors.Is(err, ErrEmptyDescription):
		return fmt.Sprintf("OOPS!!! The description of a %s cannot be empty.", keyword)
	case errors.Is(err, ErrUnrecognizedCommand):
		return "OOPS!!! I'm sorry, but I don't know what that means :-("
	case errors.Is(err, ErrInvalidNumber):
		return fmt.Sprintf("OOPS!!! Please give a task number, e.g. %s 2", keyword)
	case errors.As(err, &idxErr):
		return fmt.Sprintf("OOPS!!! Task %d does not exist. You have %s in the list.", idxErr.Index+1, countTasks(idxErr.Size))
	case errors.Is(err, ErrInvalidDate):
		return fmt.Sprintf("OOPS!!! Invalid date format. Expected: %s", parser.StoragePattern)
	case errors.Is(err, ErrInvalidFormat):
		return "OOPS!!! " + cause(err).Error()
	case errors.Is(err, ErrIO):
		return "OOPS!!! I couldn't save your tasks: " + cause(err).Error()
	default:
		return "Unexpected error: " + err.Error()
	}
}

// cause strips the command wrapper.
func cause(err error) error {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Err
	}
	return err
}

func countTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
