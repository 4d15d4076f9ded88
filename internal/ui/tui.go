package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	title       string
	suggestions []string
	output      io.Writer
}

// WithTitle sets the title bar text.
func WithTitle(title string) TUIOption {
	return func(c *tuiConfig) {
		c.title = title
	}
}

// WithSuggestions sets the words the input offers to complete with tab.
func WithSuggestions(words []string) TUIOption {
	return func(c *tuiConfig) {
		c.suggestions = words
	}
}

// WithOutput sets the terminal the TUI draws on. Defaults to stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// ErrNotTTY is returned when the TUI is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// RunTUI starts the chat TUI over r and blocks until the user quits.
func RunTUI(ctx context.Context, r Responder, opts ...TUIOption) error {
	c := tuiConfig{
		title:  "taskline",
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(&c)
	}

	if !IsTTY(c.output) {
		return ErrNotTTY
	}

	model := newChatModel(r, c)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(c.output))
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	// The alt screen is gone once the program exits, so repeat the farewell.
	if m, ok := finalModel.(*chatModel); ok && m.exited {
		if last := m.lastReply(); last != "" {
			fmt.Fprintln(c.output, last)
		}
	}
	return nil
}

type speaker int

const (
	speakerUser speaker = iota
	speakerBot
)

type turn struct {
	from  speaker
	text  string
	isErr bool
}

type chatModel struct {
	responder Responder
	title     string
	styles    styles
	input     textinput.Model
	viewport  viewport.Model
	turns     []turn
	width     int
	height    int
	ready     bool
	exited    bool // bye was processed
}

const (
	titleHeight = 1
	inputHeight = 3
	helpHeight  = 1
)

func newChatModel(r Responder, c tuiConfig) *chatModel {
	input := textinput.New()
	input.Placeholder = "Type a command, e.g. todo read book"
	input.CharLimit = 500
	input.Prompt = "> "
	if len(c.suggestions) > 0 {
		input.ShowSuggestions = true
		input.SetSuggestions(c.suggestions)
	}
	input.Focus()

	m := &chatModel{
		responder: r,
		title:     c.title,
		styles:    newStyles(TokyoNight),
		input:     input,
		viewport:  viewport.New(MaxWidth, 20),
	}
	m.turns = append(m.turns, turn{from: speakerBot, text: r.Greeting()})
	m.refresh()
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the current input line to the responder.
func (m *chatModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.input.Reset()

	m.turns = append(m.turns, turn{from: speakerUser, text: line})
	text, exit := m.responder.ProcessCommand(line)
	m.turns = append(m.turns, turn{
		from:  speakerBot,
		text:  text,
		isErr: strings.HasPrefix(text, "OOPS!!!"),
	})
	m.refresh()

	if exit {
		m.exited = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *chatModel) resize() {
	w := contentWidth(m.width)
	h := m.height - titleHeight - inputHeight - helpHeight
	if h < 3 {
		h = 3
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.input.Width = w - 6
	m.ready = true
	m.refresh()
}

// refresh re-renders the transcript and scrolls to the newest turn.
func (m *chatModel) refresh() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m *chatModel) transcript() string {
	w := m.viewport.Width
	bubbleWidth := w - 2
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n")
		}
		switch t.from {
		case speakerUser:
			b.WriteString(m.styles.UserName.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.styles.UserText.Width(bubbleWidth).Render(t.text))
		default:
			b.WriteString(m.styles.BotName.Render(m.title))
			b.WriteString("\n")
			style := m.styles.BotText
			if t.isErr {
				style = m.styles.ErrorText
			}
			b.WriteString(style.Width(bubbleWidth).Render(t.text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// lastReply returns the newest assistant text.
func (m *chatModel) lastReply() string {
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].from == speakerBot {
			return m.turns[i].text
		}
	}
	return ""
}

func (m *chatModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	w := contentWidth(m.width)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.title),
		m.viewport.View(),
		m.styles.Input.Width(w-2).Render(m.input.View()),
		m.styles.Help.Render("enter send • tab complete • pgup/pgdn scroll • esc quit"),
	)
}
