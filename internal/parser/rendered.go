package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nibzard/taskline/internal/task"
)

// Anchors located in a rendered task line.
const (
	anchorBy   = " (by: "
	anchorFrom = " (from: "
	anchorTo   = " to: "
	anchorEnd  = ")"
)

// ErrInvalidTaskType is returned when a rendered line has no known type prefix.
var ErrInvalidTaskType = errors.New("invalid task type")

// Rendered is a rendered task line decomposed into a command payload that the
// forward parser accepts.
type Rendered struct {
	Kind    task.Kind
	Done    bool
	Payload string
}

// ParsePayload decomposes a canonical render back into its kind, completion
// flag and command payload. Display dates are converted to storage format,
// so a deadline line yields "<description> /by yyyy-MM-dd HHmm".
func ParsePayload(line string) (Rendered, error) {
	if len(line) < 2 {
		return Rendered{}, fmt.Errorf("%w: %q", ErrInvalidTaskType, line)
	}
	if line[0] != '[' {
		return Rendered{}, fmt.Errorf("%w: %q", ErrInvalidTaskType, line[:2])
	}
	kind, ok := task.KindFromTag(line[1:2])
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %q", ErrInvalidTaskType, line[:2])
	}

	// [K][S] <body>
	if len(line) < 7 || line[2:4] != "][" || line[5:7] != "] " {
		return Rendered{}, fmt.Errorf("%w: malformed status marker in %q", ErrInvalidFormat, line)
	}
	var done bool
	switch line[4] {
	case 'X':
		done = true
	case ' ':
	default:
		return Rendered{}, fmt.Errorf("%w: unknown status %q", ErrInvalidFormat, line[4:5])
	}
	body := line[7:]

	r := Rendered{Kind: kind, Done: done}
	switch kind {
	case task.KindTodo:
		r.Payload = strings.TrimSpace(body)
	case task.KindDeadline:
		description, inner, err := splitSuffix(body, anchorBy)
		if err != nil {
			return Rendered{}, err
		}
		by, err := ToStorage(inner)
		if err != nil {
			return Rendered{}, err
		}
		r.Payload = description + " " + MarkerBy + " " + by
	case task.KindEvent:
		description, inner, err := splitSuffix(body, anchorFrom)
		if err != nil {
			return Rendered{}, err
		}
		toIdx := strings.Index(inner, anchorTo)
		if toIdx < 0 {
			return Rendered{}, fmt.Errorf("%w: missing %q in %q", ErrInvalidFormat, strings.TrimSpace(anchorTo), body)
		}
		from, err := ToStorage(inner[:toIdx])
		if err != nil {
			return Rendered{}, err
		}
		to, err := ToStorage(inner[toIdx+len(anchorTo):])
		if err != nil {
			return Rendered{}, err
		}
		r.Payload = description + " " + MarkerFrom + " " + from + " " + MarkerTo + " " + to
	}
	return r, nil
}

// ParseRendered reconstructs a task from its canonical render.
func ParseRendered(line string) (task.Task, error) {
	r, err := ParsePayload(line)
	if err != nil {
		return task.Task{}, err
	}

	var t task.Task
	switch r.Kind {
	case task.KindTodo:
		t, err = task.NewTodo(r.Payload)
	case task.KindDeadline:
		t, err = NewDeadline(r.Payload)
	case task.KindEvent:
		t, err = NewEvent(r.Payload)
	}
	if err != nil {
		if errors.Is(err, task.ErrEmptyDescription) {
			return task.Task{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return task.Task{}, err
	}
	if r.Done {
		t.MarkDone()
	}
	return t, nil
}

// splitSuffix splits "<description><anchor><inner>)" using the last
// occurrence of anchor, so descriptions may contain the anchor text.
func splitSuffix(body, anchor string) (string, string, error) {
	if !strings.HasSuffix(body, anchorEnd) {
		return "", "", fmt.Errorf("%w: missing closing %q in %q", ErrInvalidFormat, anchorEnd, body)
	}
	idx := strings.LastIndex(body, anchor)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: missing %q in %q", ErrInvalidFormat, strings.TrimSpace(anchor), body)
	}
	description := body[:idx]
	inner := body[idx+len(anchor) : len(body)-len(anchorEnd)]
	return description, inner, nil
}
