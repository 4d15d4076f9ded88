package command

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskline/internal/parser"
	"github.com/nibzard/taskline/internal/task"
)

// Command keywords.
const (
	CmdList      = "list"
	CmdMark      = "mark"
	CmdUnmark    = "unmark"
	CmdDelete    = "delete"
	CmdFind      = "find"
	CmdUpgrade   = "upgrade"
	CmdDowngrade = "downgrade"
	CmdTodo      = "todo"
	CmdDeadline  = "deadline"
	CmdEvent     = "event"
	CmdBye       = "bye"
)

// Commands is the full command vocabulary.
var Commands = []string{
	CmdList, CmdMark, CmdUnmark, CmdDelete, CmdFind, CmdUpgrade,
	CmdDowngrade, CmdTodo, CmdDeadline, CmdEvent, CmdBye,
}

// Farewell is the response to bye.
const Farewell = "Bye. Hope to see you again soon!"

// Result is the outcome of a successful command.
type Result struct {
	Keyword string
	Text    string
	Mutated bool // the list changed and must be persisted
	Exit    bool // the session should end
}

// Execute parses line and applies it to list. On error the list is unchanged.
func Execute(list *task.List, line string) (Result, error) {
	keyword, payload := parser.Split(line)

	if needsArgument(keyword) && strings.TrimSpace(payload) == "" {
		return Result{}, commandError(keyword, ErrEmptyDescription)
	}
	if needsArgument(keyword) && strings.ContainsAny(payload, "\r\n") {
		return Result{}, commandError(keyword, fmt.Errorf("%w: a command must fit on one line", ErrInvalidFormat))
	}

	var (
		res Result
		err error
	)
	switch keyword {
	case CmdList:
		res = listTasks(list)
	case CmdFind:
		res = findTasks(list, payload)
	case CmdMark:
		res, _, err = updateTask(list, payload, list.MarkDone, "Nice! I've marked this task as done:")
	case CmdUnmark:
		res, _, err = updateTask(list, payload, list.MarkUndone, "OK, I've marked this task as not done yet:")
	case CmdUpgrade:
		res, err = updatePriority(list, payload, list.Upgrade, "OK, I've upgraded this task:")
	case CmdDowngrade:
		res, err = updatePriority(list, payload, list.Downgrade, "OK, I've downgraded this task:")
	case CmdDelete:
		res, err = deleteTask(list, payload)
	case CmdTodo:
		res, err = addTask(list, func() (task.Task, error) {
			return task.NewTodo(strings.TrimSpace(payload))
		})
	case CmdDeadline:
		res, err = addTask(list, func() (task.Task, error) {
			return parser.NewDeadline(payload)
		})
	case CmdEvent:
		res, err = addTask(list, func() (task.Task, error) {
			return parser.NewEvent(payload)
		})
	case CmdBye:
		res = Result{Text: Farewell, Exit: true}
	default:
		return Result{}, commandError(keyword, ErrUnrecognizedCommand)
	}
	if err != nil {
		return Result{}, commandError(keyword, err)
	}
	res.Keyword = keyword
	return res, nil
}

// needsArgument reports whether keyword requires a payload.
func needsArgument(keyword string) bool {
	switch keyword {
	case CmdMark, CmdUnmark, CmdDelete, CmdFind, CmdUpgrade, CmdDowngrade,
		CmdTodo, CmdDeadline, CmdEvent:
		return true
	}
	return false
}

// IsMutating reports whether keyword can change the task list.
func IsMutating(keyword string) bool {
	switch keyword {
	case CmdMark, CmdUnmark, CmdDelete, CmdUpgrade, CmdDowngrade,
		CmdTodo, CmdDeadline, CmdEvent:
		return true
	}
	return false
}

func listTasks(list *task.List) Result {
	if list.Len() == 0 {
		return Result{Text: "Your task list is empty."}
	}
	var b strings.Builder
	b.WriteString("Here are the tasks in your list:")
	for i, t := range list.All() {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t.Render())
	}
	return Result{Text: b.String()}
}

func findTasks(list *task.List, query string) Result {
	matches := list.Find(query)
	if len(matches) == 0 {
		return Result{Text: "No matching tasks found."}
	}
	var b strings.Builder
	b.WriteString("Here are the matching tasks in your list:")
	for i, m := range matches {
		fmt.Fprintf(&b, "\n%d. %s", i+1, m.Task.Render())
	}
	return Result{Text: b.String()}
}

// updateTask applies op to the task numbered by payload and returns the
// updated task alongside the result.
func updateTask(list *task.List, payload string, op func(int) error, header string) (Result, task.Task, error) {
	i, err := parser.ParseIndex(payload)
	if err != nil {
		return Result{}, task.Task{}, err
	}
	if err := op(i); err != nil {
		return Result{}, task.Task{}, err
	}
	t, err := list.Get(i)
	if err != nil {
		return Result{}, task.Task{}, err
	}
	return Result{Text: header + "\n" + t.Render(), Mutated: true}, t, nil
}

func updatePriority(list *task.List, payload string, op func(int) error, header string) (Result, error) {
	res, t, err := updateTask(list, payload, op, header)
	if err != nil {
		return Result{}, err
	}
	res.Text += "\nPriority: " + t.Priority.String()
	return res, nil
}

func deleteTask(list *task.List, payload string) (Result, error) {
	i, err := parser.ParseIndex(payload)
	if err != nil {
		return Result{}, err
	}
	removed, ok := list.Delete(i)
	if !ok {
		return Result{}, &task.IndexError{Index: i, Size: list.Len()}
	}
	text := fmt.Sprintf("Noted. I've removed this task:\n%s\nNow you have %s in the list.",
		removed.Render(), countTasks(list.Len()))
	return Result{Text: text, Mutated: true}, nil
}

func addTask(list *task.List, build func() (task.Task, error)) (Result, error) {
	t, err := build()
	if err != nil {
		return Result{}, err
	}
	list.Add(t)
	text := fmt.Sprintf("Got it. I've added this task:\n%s\nNow you have %s in the list.",
		t.Render(), countTasks(list.Len()))
	return Result{Text: text, Mutated: true}, nil
}
