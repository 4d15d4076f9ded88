// Package task defines the tracked task variants and the ordered task list.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is the time layout used in the canonical render.
const DisplayLayout = "Jan 02 2006 1504"

var (
	// ErrEmptyDescription is returned when a task is constructed with a blank description.
	ErrEmptyDescription = errors.New("description cannot be empty")
	// ErrInvalidFormat is returned when a description cannot be stored as
	// one canonical line.
	ErrInvalidFormat = errors.New("invalid format")
)

// Markers a description may not contain, because the stored line is
// re-split on their first occurrence.
const (
	reservedBy   = "/by"
	reservedFrom = "/from"
)

// Kind identifies a task variant.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

// Tag returns the one-letter tag used in the canonical render.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindFromTag maps a render tag back to its Kind.
func KindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "T":
		return KindTodo, true
	case "D":
		return KindDeadline, true
	case "E":
		return KindEvent, true
	default:
		return 0, false
	}
}

// Priority is the urgency level of a task. The zero value is PriorityLow.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Up returns the next higher priority, clamped at PriorityHigh.
func (p Priority) Up() Priority {
	if p >= PriorityHigh {
		return PriorityHigh
	}
	return p + 1
}

// Down returns the next lower priority, clamped at PriorityLow.
func (p Priority) Down() Priority {
	if p <= PriorityLow {
		return PriorityLow
	}
	return p - 1
}

// Task is a single tracked item. By is set for deadlines; From and To for events.
type Task struct {
	Kind        Kind
	Description string
	Done        bool
	Priority    Priority
	By          time.Time
	From        time.Time
	To          time.Time
}

// NewTodo creates a todo task. The description is trimmed.
func NewTodo(description string) (Task, error) {
	description, err := cleanDescription(description, "")
	if err != nil {
		return Task{}, err
	}
	return Task{Kind: KindTodo, Description: description}, nil
}

// NewDeadline creates a deadline task due at by.
func NewDeadline(description string, by time.Time) (Task, error) {
	description, err := cleanDescription(description, reservedBy)
	if err != nil {
		return Task{}, err
	}
	return Task{Kind: KindDeadline, Description: description, By: by}, nil
}

// NewEvent creates an event task spanning from..to.
func NewEvent(description string, from, to time.Time) (Task, error) {
	description, err := cleanDescription(description, reservedFrom)
	if err != nil {
		return Task{}, err
	}
	return Task{Kind: KindEvent, Description: description, From: from, To: to}, nil
}

// cleanDescription trims description and rejects text that would not
// survive a save and reload.
func cleanDescription(description, reserved string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}
	if strings.ContainsAny(description, "\r\n") {
		return "", fmt.Errorf("%w: a description must fit on one line", ErrInvalidFormat)
	}
	if reserved != "" && strings.Contains(description, reserved) {
		return "", fmt.Errorf("%w: the description cannot contain %q", ErrInvalidFormat, reserved)
	}
	return description, nil
}

// StatusIcon returns "X" for a done task and a single space otherwise.
func (t *Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// MarkDone marks the task as done.
func (t *Task) MarkDone() {
	t.Done = true
}

// MarkUndone marks the task as not done.
func (t *Task) MarkUndone() {
	t.Done = false
}

// SetPriority sets the task priority.
func (t *Task) SetPriority(p Priority) {
	t.Priority = p
}

// Upgrade raises the priority by one level.
func (t *Task) Upgrade() {
	t.Priority = t.Priority.Up()
}

// Downgrade lowers the priority by one level.
func (t *Task) Downgrade() {
	t.Priority = t.Priority.Down()
}

// Render returns the canonical single-line representation of the task.
func (t Task) Render() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(t.Kind.Tag())
	b.WriteString("][")
	b.WriteString(t.StatusIcon())
	b.WriteString("] ")
	b.WriteString(t.Description)

	switch t.Kind {
	case KindDeadline:
		b.WriteString(" (by: ")
		b.WriteString(t.By.Format(DisplayLayout))
		b.WriteString(")")
	case KindEvent:
		b.WriteString(" (from: ")
		b.WriteString(t.From.Format(DisplayLayout))
		b.WriteString(" to: ")
		b.WriteString(t.To.Format(DisplayLayout))
		b.WriteString(")")
	}
	return b.String()
}

// String implements fmt.Stringer using the canonical render.
func (t Task) String() string {
	return t.Render()
}
