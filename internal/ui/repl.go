// Package ui provides the line-oriented REPL and the chat TUI that sit in
// front of a command session.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// Divider frames every block of assistant output in the REPL.
const Divider = "____________________________________________________________"

// Responder turns one input line into a response. *command.Session
// satisfies it.
type Responder interface {
	Greeting() string
	ProcessCommand(line string) (string, bool)
}

// RunREPL reads commands from in until bye, EOF or ctx is cancelled, and
// writes each framed response to out. The reader goroutine stops once
// RunREPL returns, unless it is blocked in a Read on in, in which case it
// stops when that Read returns.
func RunREPL(ctx context.Context, r Responder, in io.Reader, out io.Writer) error {
	if err := writeBlock(out, r.Greeting()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, scanErr := scanLines(ctx, in)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			text, exit := r.ProcessCommand(line)
			if err := writeBlock(out, text); err != nil {
				return err
			}
			if exit {
				return nil
			}
		}
	}
}

// scanLines feeds the lines of in to the returned channel until EOF or ctx
// is done. The error channel receives exactly one value once lines closes.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
		scanErr <- scanner.Err()
	}()
	return lines, scanErr
}

func writeBlock(out io.Writer, text string) error {
	if _, err := fmt.Fprintf(out, "%s\n%s\n%s\n", Divider, text, Divider); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
