package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/task"
)

func sampleList(t *testing.T) *task.List {
	t.Helper()
	todo, err := task.NewTodo("read book")
	if err != nil {
		t.Fatal(err)
	}
	deadline, err := parser.NewDeadline("submit report /by 2025-03-01 1800")
	if err != nil {
		t.Fatal(err)
	}
	deadline.MarkDone()
	event, err := parser.NewEvent("trip /from 2025-04-01 0900 /to 2025-04-03 1800")
	if err != nil {
		t.Fatal(err)
	}
	return task.NewList(todo, deadline, event)
}

const sampleFile = "[T][ ] read book\n" +
	"[D][X] submit report (by: Mar 01 2025 1800)\n" +
	"[E][ ] trip (from: Apr 01 2025 0900 to: Apr 03 2025 1800)\n"

func TestSaveWritesCanonicalRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store := New(path)

	if err := store.Save(sampleList(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != sampleFile {
		t.Errorf("file content:\ngot  %q\nwant %q", string(data), sampleFile)
	}
}

func TestSaveTruncatesPreviousContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store := New(path)

	if err := store.Save(sampleList(t)); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	todo, _ := task.NewTodo("only one")
	if err := store.Save(task.NewList(todo)); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[T][ ] only one\n" {
		t.Errorf("got %q", string(data))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the task file in dir, got %d entries", len(entries))
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.txt")
	if err := New(path).Save(task.NewList()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	store := New(path)
	original := sampleList(t)

	if err := store.Save(original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Len() != original.Len() {
		t.Fatalf("Len: got %d, want %d", loaded.Len(), original.Len())
	}
	want := original.All()
	for i, got := range loaded.All() {
		if got.Render() != want[i].Render() {
			t.Errorf("task %d: got %q, want %q", i, got.Render(), want[i].Render())
		}
		if got.Kind != want[i].Kind || got.Done != want[i].Done {
			t.Errorf("task %d: got kind=%v done=%v, want kind=%v done=%v",
				i, got.Kind, got.Done, want[i].Kind, want[i].Done)
		}
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.txt"))
	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if list.Len() != 0 {
		t.Errorf("Len: got %d, want 0", list.Len())
	}
}

func TestLoadIgnoresBlankLinesAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "[T][ ] read book\r\n\r\n   \n[T][X] buy milk\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	list, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if list.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", list.Len())
	}
	second, _ := list.Get(1)
	if second.Render() != "[T][X] buy milk" {
		t.Errorf("second: got %q", second.Render())
	}
}

func TestLoadAbortsOnInvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "[T][ ] read book\n[Q][ ] mystery\n[T][ ] never reached\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New(path).Load()
	if err == nil {
		t.Fatal("expected error for invalid line")
	}
	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected *LineError, got %T: %v", err, err)
	}
	if lineErr.Line != 2 {
		t.Errorf("Line: got %d, want 2", lineErr.Line)
	}
	if !errors.Is(err, parser.ErrInvalidTaskType) {
		t.Errorf("expected ErrInvalidTaskType, got %v", err)
	}
}

func TestLoadSkipsInvalidLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	content := "[T][ ] read book\n[D][ ] no date\n[T][ ] buy milk\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	logger := log.New(&logs)
	store := New(path, WithSkipInvalid(true), WithLogger(logger))

	list, report, err := store.LoadWithReport()
	if err != nil {
		t.Fatalf("LoadWithReport failed: %v", err)
	}
	if list.Len() != 2 {
		t.Errorf("Len: got %d, want 2", list.Len())
	}
	if report.Loaded != 2 {
		t.Errorf("Loaded: got %d, want 2", report.Loaded)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Line != 2 {
		t.Fatalf("Skipped: got %+v", report.Skipped)
	}
	if !errors.Is(report.Skipped[0], parser.ErrInvalidFormat) {
		t.Errorf("skip reason: got %v, want ErrInvalidFormat", report.Skipped[0].Err)
	}
	if !strings.Contains(logs.String(), "skipped invalid task line") {
		t.Errorf("expected warning in logs, got %q", logs.String())
	}
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleList(t).All()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if buf.String() != sampleFile {
		t.Errorf("Encode: got %q", buf.String())
	}

	list, report, err := Decode(strings.NewReader(buf.String()), false)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if list.Len() != 3 || report.Loaded != 3 {
		t.Errorf("Decode: got len=%d loaded=%d", list.Len(), report.Loaded)
	}
}

func TestEncodeDecodeUnusualDescriptions(t *testing.T) {
	padded, err := task.NewTodo(" padded ")
	if err != nil {
		t.Fatal(err)
	}
	deadline, err := parser.NewDeadline("reply to /to list (by: x) /by 2025-03-01 1800")
	if err != nil {
		t.Fatal(err)
	}
	event, err := parser.NewEvent("sync /by phone /from 2025-04-01 0900 /to 2025-04-01 1000")
	if err != nil {
		t.Fatal(err)
	}
	original := []task.Task{padded, deadline, event}

	var buf bytes.Buffer
	if err := Encode(&buf, original); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	list, _, err := Decode(strings.NewReader(buf.String()), false)
	if err != nil {
		t.Fatalf("Decode(%q) failed: %v", buf.String(), err)
	}
	if list.Len() != len(original) {
		t.Fatalf("Len: got %d, want %d", list.Len(), len(original))
	}
	for i, got := range list.All() {
		if got.Render() != original[i].Render() {
			t.Errorf("task %d: got %q, want %q", i, got.Render(), original[i].Render())
		}
	}
}

func TestEncodeRejectsMultiLineTask(t *testing.T) {
	tasks := []task.Task{{Kind: task.KindTodo, Description: "buy\nmilk"}}

	var buf bytes.Buffer
	err := Encode(&buf, tasks)
	if !errors.Is(err, task.ErrInvalidFormat) {
		t.Fatalf("got %v, want ErrInvalidFormat", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}
