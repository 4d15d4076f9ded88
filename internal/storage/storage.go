// Package storage persists task lists as one canonical render per line.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/task"
)

// LineError reports a stored line that could not be parsed.
type LineError struct {
	Line int    // 1-based line number
	Text string // raw line content
	Err  error  // underlying parse error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadReport summarizes a load.
type LoadReport struct {
	Loaded  int
	Skipped []*LineError
}

// Option configures a Store.
type Option func(*Store)

// WithSkipInvalid makes Load skip unparsable lines instead of failing.
func WithSkipInvalid(skip bool) Option {
	return func(s *Store) {
		s.skipInvalid = skip
	}
}

// WithLogger sets the logger used to report skipped lines and saves.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store reads and writes a task file at a fixed path.
type Store struct {
	path        string
	skipInvalid bool
	logger      *log.Logger
}

// New creates a Store for path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the task file. A missing file yields an empty list.
func (s *Store) Load() (*task.List, error) {
	list, _, err := s.LoadWithReport()
	return list, err
}

// LoadWithReport reads the task file and reports skipped lines.
func (s *Store) LoadWithReport() (*task.List, *LoadReport, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("task file not found, starting empty", "path", s.path)
			return task.NewList(), &LoadReport{}, nil
		}
		return nil, nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	list, report, err := Decode(f, s.skipInvalid)
	if err != nil {
		return nil, nil, fmt.Errorf("read task file %s: %w", s.path, err)
	}
	for _, skipped := range report.Skipped {
		s.logger.Warn("skipped invalid task line", "path", s.path, "line", skipped.Line, "err", skipped.Err)
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", report.Loaded)
	return list, report, nil
}

// Save rewrites the whole task file with the list contents. The data is
// written to a temporary file in the same directory and renamed into place.
func (s *Store) Save(list *task.List) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Encode(tmp, list.All()); err != nil {
		tmp.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod task file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", list.Len())
	return nil
}

// Encode writes one canonical render per line. A task whose render spans
// lines is rejected before anything is written.
func Encode(w io.Writer, tasks []task.Task) error {
	for i, t := range tasks {
		if strings.ContainsAny(t.Description, "\r\n") {
			return fmt.Errorf("%w: task %d spans more than one line", task.ErrInvalidFormat, i+1)
		}
	}
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := bw.WriteString(t.Render()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses one task per line. Blank lines are ignored. Unless
// skipInvalid is set, the first unparsable line aborts decoding with a
// *LineError.
func Decode(r io.Reader, skipInvalid bool) (*task.List, *LoadReport, error) {
	list := task.NewList()
	report := &LoadReport{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		t, err := parser.ParseRendered(line)
		if err != nil {
			lineErr := &LineError{Line: lineNo, Text: line, Err: err}
			if !skipInvalid {
				return nil, nil, lineErr
			}
			report.Skipped = append(report.Skipped, lineErr)
			continue
		}
		list.Add(t)
		report.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return list, report, nil
}
