// Package cmd implements the CLI command structure for taskline.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nibzard/taskline/internal/command"
	"github.com/nibzard/taskline/internal/config"
	"github.com/nibzard/taskline/internal/logging"
	"github.com/nibzard/taskline/internal/storage"
	"github.com/nibzard/taskline/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ExitError carries a process exit code. Its message has already been
// shown to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// streams groups the process I/O so commands can be tested.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Run executes the taskline CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, s streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskline", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		printUsage(fs, s.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, s.out)
		return nil
	}
	if *showVersion {
		return versionCommand(s.out)
	}

	// If no args or first arg is a flag, use "chat" as default
	subcommand := "chat"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "chat":
		return chatCommand(ctx, cws.Config, remainingArgs, s)
	case "tui":
		return tuiCommand(ctx, cws.Config, remainingArgs, s)
	case "exec":
		return execCommand(cws.Config, remainingArgs, s)
	case "config":
		return configCommand(cws, remainingArgs, s)
	case "version":
		return versionCommand(s.out)
	case "help":
		printUsage(fs, s.out)
		return nil
	default:
		fmt.Fprintf(s.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, s.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openSession builds the logger, store and session described by cfg.
// The returned closer releases the log file.
func openSession(cfg *config.Config, s streams) (*command.Session, io.Closer, error) {
	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
		File:       cfg.LogFile,
		Writer:     s.err,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	store := storage.New(cfg.DataFile,
		storage.WithSkipInvalid(cfg.SkipInvalidLines),
		storage.WithLogger(logger),
	)
	session, err := command.OpenSession(store,
		command.WithLogger(logger),
		command.WithName(cfg.BotName),
	)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	logger.Debug("session opened", "path", store.Path(), "tasks", len(session.Tasks()))
	return session, closer, nil
}

// chatCommand runs the line-oriented REPL.
func chatCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	session, closer, err := openSession(cfg, s)
	if err != nil {
		return err
	}
	defer closer.Close()

	return ui.RunREPL(ctx, session, s.in, s.out)
}

// tuiCommand runs the chat TUI. RunTUI fails with ui.ErrNotTTY when stdout
// is not a terminal.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	session, closer, err := openSession(cfg, s)
	if err != nil {
		return err
	}
	defer closer.Close()

	return ui.RunTUI(ctx, session,
		ui.WithTitle(cfg.BotName),
		ui.WithSuggestions(command.Commands),
		ui.WithOutput(s.out),
	)
}

// execCommand runs a single command line and exits. A rejected command
// prints its message to stderr and exits with code 2.
func execCommand(cfg *config.Config, args []string, s streams) error {
	if len(args) == 0 {
		return fmt.Errorf("exec requires a command, e.g. taskline exec list")
	}
	session, closer, err := openSession(cfg, s)
	if err != nil {
		return err
	}
	defer closer.Close()

	res, err := session.Execute(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(s.err, command.UserMessage(err))
		return &ExitError{Code: 2, Err: err}
	}
	fmt.Fprintln(s.out, res.Text)
	return nil
}

// configCommand prints the effective configuration.
func configCommand(cws *config.ConfigWithSources, args []string, s streams) error {
	fs := flag.NewFlagSet("taskline config", flag.ContinueOnError)
	fs.SetOutput(s.err)
	example := fs.Bool("example", false, "Print an example config file")
	schema := fs.Bool("schema", false, "Print the config JSON schema")
	sources := fs.Bool("sources", false, "Show where each value came from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch {
	case *example:
		fmt.Fprint(s.out, config.ExampleConfig())
		return nil
	case *schema:
		fmt.Fprint(s.out, config.Schema())
		return nil
	case *sources:
		printSources(cws, s.out)
		return nil
	}

	if file := cws.GetConfigFile(); file != "" {
		fmt.Fprintf(s.out, "# loaded from %s\n", file)
	}
	return config.Encode(s.out, cws.Config)
}

func printSources(cws *config.ConfigWithSources, w io.Writer) {
	fields := make([]string, 0, len(cws.Sources))
	for field := range cws.Sources {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "%-20s %s\n", field, cws.Sources[field])
	}
	for _, file := range cws.Files {
		fmt.Fprintf(w, "file: %s\n", file)
	}
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskline version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskline - a chat-style personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskline [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  chat          Chat in the terminal, one command per line (default)")
	fmt.Fprintln(w, "  tui           Launch the chat window")
	fmt.Fprintln(w, "  exec <line>   Run one command, e.g. exec todo read book")
	fmt.Fprintln(w, "  config        Print the effective config (-example, -schema, -sources)")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chat commands:")
	fmt.Fprintln(w, "  todo <description>")
	fmt.Fprintln(w, "  deadline <description> /by yyyy-MM-dd HHmm")
	fmt.Fprintln(w, "  event <description> /from yyyy-MM-dd HHmm /to yyyy-MM-dd HHmm")
	fmt.Fprintln(w, "  list | find <text> | mark N | unmark N | delete N")
	fmt.Fprintln(w, "  upgrade N | downgrade N | bye")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
