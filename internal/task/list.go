package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIndexOutOfRange is returned when a position does not address a task.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an out-of-range position along with the list size.
type IndexError struct {
	Index int // 0-based position that was requested
	Size  int // list size at the time of the request
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task %d does not exist (list has %d tasks)", e.Index+1, e.Size)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// Match is a task found by a search, with its 0-based list position.
type Match struct {
	Index int
	Task  Task
}

// List is an ordered, position-addressed collection of tasks.
// Insertion order is display order.
type List struct {
	tasks []Task
}

// NewList creates a list holding the given tasks in order.
func NewList(tasks ...Task) *List {
	l := &List{tasks: make([]Task, 0, len(tasks))}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Add appends a task to the end of the list.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Delete removes the task at i and returns it. If i is out of range the list
// is left untouched and ok is false; callers decide whether that is an error.
func (l *List) Delete(i int) (Task, bool) {
	if i < 0 || i >= len(l.tasks) {
		return Task{}, false
	}
	removed := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return removed, true
}

// Get returns a copy of the task at i.
func (l *List) Get(i int) (Task, error) {
	if err := l.check(i); err != nil {
		return Task{}, err
	}
	return l.tasks[i], nil
}

// MarkDone marks the task at i as done.
func (l *List) MarkDone(i int) error {
	return l.update(i, (*Task).MarkDone)
}

// MarkUndone marks the task at i as not done.
func (l *List) MarkUndone(i int) error {
	return l.update(i, (*Task).MarkUndone)
}

// Upgrade raises the priority of the task at i.
func (l *List) Upgrade(i int) error {
	return l.update(i, (*Task).Upgrade)
}

// Downgrade lowers the priority of the task at i.
func (l *List) Downgrade(i int) error {
	return l.update(i, (*Task).Downgrade)
}

// All returns a snapshot of the tasks in order.
func (l *List) All() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Find returns every task whose description contains query (case-sensitive),
// in list order.
func (l *List) Find(query string) []Match {
	var matches []Match
	for i, t := range l.tasks {
		if strings.Contains(t.Description, query) {
			matches = append(matches, Match{Index: i, Task: t})
		}
	}
	return matches
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	return NewList(l.tasks...)
}

func (l *List) update(i int, fn func(*Task)) error {
	if err := l.check(i); err != nil {
		return err
	}
	fn(&l.tasks[i])
	return nil
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return &IndexError{Index: i, Size: len(l.tasks)}
	}
	return nil
}
