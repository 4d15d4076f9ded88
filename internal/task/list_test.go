package task

import (
	"errors"
	"testing"
)

func todos(t *testing.T, descriptions ...string) *List {
	t.Helper()
	l := NewList()
	for _, d := range descriptions {
		task, err := NewTodo(d)
		if err != nil {
			t.Fatalf("NewTodo(%q): %v", d, err)
		}
		l.Add(task)
	}
	return l
}

func descriptions(l *List) []string {
	var out []string
	for _, t := range l.All() {
		out = append(out, t.Description)
	}
	return out
}

func TestListAdd(t *testing.T) {
	l := todos(t, "read books")
	if l.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", l.Len())
	}
	got, err := l.Get(0)
	if err != nil {
		t.Fatalf("Get(0) failed: %v", err)
	}
	if got.Render() != "[T][ ] read books" {
		t.Errorf("Render: got %q", got.Render())
	}
}

func TestListDeleteShiftsIndexes(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"first", 0, []string{"b", "c", "d"}},
		{"middle", 1, []string{"a", "c", "d"}},
		{"last", 3, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := todos(t, "a", "b", "c", "d")
			removed, ok := l.Delete(tt.index)
			if !ok {
				t.Fatalf("Delete(%d): expected ok", tt.index)
			}
			if removed.Description != []string{"a", "b", "c", "d"}[tt.index] {
				t.Errorf("removed: got %q", removed.Description)
			}
			if l.Len() != 3 {
				t.Errorf("Len: got %d, want 3", l.Len())
			}
			got := descriptions(l)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestListDeleteOutOfRangeIsNoop(t *testing.T) {
	l := todos(t, "a", "b")
	for _, i := range []int{-1, 2, 100} {
		if _, ok := l.Delete(i); ok {
			t.Errorf("Delete(%d): expected ok=false", i)
		}
	}
	if l.Len() != 2 {
		t.Errorf("Len: got %d, want 2", l.Len())
	}
}

func TestListIndexErrors(t *testing.T) {
	l := todos(t, "a")
	ops := map[string]func(int) error{
		"MarkDone":   l.MarkDone,
		"MarkUndone": l.MarkUndone,
		"Upgrade":    l.Upgrade,
		"Downgrade":  l.Downgrade,
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op(4)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Fatalf("got %v, want ErrIndexOutOfRange", err)
			}
			var ie *IndexError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *IndexError, got %T", err)
			}
			if ie.Index != 4 || ie.Size != 1 {
				t.Errorf("IndexError: got index=%d size=%d", ie.Index, ie.Size)
			}
		})
	}

	got, _ := l.Get(0)
	if got.Done || got.Priority != PriorityLow {
		t.Errorf("task changed by failed operations: %+v", got)
	}
}

func TestListMutations(t *testing.T) {
	l := todos(t, "a", "b")
	if err := l.MarkDone(1); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if err := l.Upgrade(1); err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	got, _ := l.Get(1)
	if !got.Done {
		t.Error("expected task 1 to be done")
	}
	if got.Priority != PriorityMedium {
		t.Errorf("Priority: got %s, want MEDIUM", got.Priority)
	}

	if err := l.MarkUndone(1); err != nil {
		t.Fatalf("MarkUndone: %v", err)
	}
	if err := l.Downgrade(1); err != nil {
		t.Fatalf("Downgrade: %v", err)
	}
	got, _ = l.Get(1)
	if got.Done || got.Priority != PriorityLow {
		t.Errorf("after undo: got done=%v priority=%s", got.Done, got.Priority)
	}
}

func TestListFind(t *testing.T) {
	l := todos(t, "read book", "buy milk", "Book club", "return book")
	matches := l.Find("book")
	if len(matches) != 2 {
		t.Fatalf("matches: got %d, want 2", len(matches))
	}
	if matches[0].Index != 0 || matches[0].Task.Description != "read book" {
		t.Errorf("match 0: got %+v", matches[0])
	}
	if matches[1].Index != 3 || matches[1].Task.Description != "return book" {
		t.Errorf("match 1: got %+v", matches[1])
	}

	if got := l.Find("coffee"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestListSnapshotsAreIndependent(t *testing.T) {
	l := todos(t, "a")
	all := l.All()
	all[0].Description = "changed"
	clone := l.Clone()
	clone.MarkDone(0)

	got, _ := l.Get(0)
	if got.Description != "a" {
		t.Errorf("All() aliased list storage: got %q", got.Description)
	}
	if got.Done {
		t.Error("Clone() aliased list storage")
	}
}
