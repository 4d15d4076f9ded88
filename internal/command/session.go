package command

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/storage"
	"github.com/nibzard/taskline/internal/task"
)

// DefaultName is the assistant name used in the greeting.
const DefaultName = "Taskline"

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithName sets the assistant name shown in the greeting.
func WithName(name string) SessionOption {
	return func(s *Session) {
		if name != "" {
			s.name = name
		}
	}
}

// Session owns one task list and persists it after every mutating command.
// A Session is not safe for concurrent use.
type Session struct {
	store  *storage.Store
	list   *task.List
	logger *log.Logger
	name   string
}

// OpenSession loads the task list from store and returns a session over it.
func OpenSession(store *storage.Store, opts ...SessionOption) (*Session, error) {
	list, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return NewSession(store, list, opts...), nil
}

// NewSession returns a session over an already loaded list.
func NewSession(store *storage.Store, list *task.List, opts ...SessionOption) *Session {
	s := &Session{
		store: store,
		list:  list,
		name:  DefaultName,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	return s
}

// Greeting returns the text shown when a session starts.
func (s *Session) Greeting() string {
	return fmt.Sprintf("Hello! I'm %s!\nWhat can I do for you?", s.name)
}

// Tasks returns a snapshot of the current tasks.
func (s *Session) Tasks() []task.Task {
	return s.list.All()
}

// Execute runs one command line. Mutating commands are saved before
// returning; if the save fails the list is rolled back and an ErrIO error
// is returned, so the list and the file never diverge.
func (s *Session) Execute(line string) (Result, error) {
	keyword, _ := parser.Split(line)
	s.logger.Debug("command", "keyword", keyword)

	var snapshot *task.List
	if IsMutating(keyword) {
		snapshot = s.list.Clone()
	}

	res, err := Execute(s.list, line)
	if err != nil {
		s.logger.Debug("command rejected", "keyword", keyword, "err", err)
		return Result{}, err
	}
	if !res.Mutated {
		return res, nil
	}

	if err := s.store.Save(s.list); err != nil {
		s.list = snapshot
		s.logger.Error("save failed, change rolled back", "keyword", keyword, "path", s.store.Path(), "err", err)
		return Result{}, commandError(keyword, fmt.Errorf("%w: %v", ErrIO, err))
	}
	s.logger.Info("saved", "keyword", keyword, "tasks", s.list.Len(), "path", s.store.Path())
	return res, nil
}

// ProcessCommand runs one command line and returns the response text and
// whether the caller should end the session.
func (s *Session) ProcessCommand(line string) (string, bool) {
	res, err := s.Execute(line)
	if err != nil {
		return UserMessage(err), false
	}
	return res.Text, res.Exit
}
