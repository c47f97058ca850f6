// Package tui is the terminal front end: it renders the calculator display,
// the live clock and the result log, and turns key presses into engine
// commands.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"retrocalc/internal/clock"
	"retrocalc/internal/engine"
)

var (
	accent    = lipgloss.Color("#06d6a0")
	errorRed  = lipgloss.Color("#ef476f")
	mutedText = lipgloss.Color("#8CA1AE")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	clockStyle = lipgloss.NewStyle().
			Foreground(mutedText)

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(28).
			Align(lipgloss.Right)

	entryStyle = lipgloss.NewStyle().
			Bold(true)

	operationStyle = lipgloss.NewStyle().
			Foreground(mutedText)

	operationErrorStyle = lipgloss.NewStyle().
				Foreground(errorRed).
				Bold(true)

	logOKStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(accent).
			PaddingLeft(1)

	logErrorStyle = logOKStyle.
			BorderForeground(errorRed).
			Foreground(errorRed)
)

// Submitter accepts decoded key presses; *engine.Queue satisfies it.
type Submitter interface {
	Submit(cmd engine.Command) bool
}

// Model is the bubbletea model. It only mirrors what the engine reports
// through the Sink; all input semantics live in the engine.
type Model struct {
	queue Submitter
	keys  keyMap
	help  help.Model

	entry     string
	operation string
	clock     string
	log       []engine.LogEntry
}

func New(queue Submitter) Model {
	return Model{
		queue:     queue,
		keys:      defaultKeyMap(),
		help:      help.New(),
		entry:     "0",
		operation: engine.OperationReady,
		clock:     clock.Placeholder,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if cmd, ok := m.keys.command(msg); ok {
			m.queue.Submit(cmd)
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case entryMsg:
		m.entry = string(msg)
	case operationMsg:
		m.operation = string(msg)
	case clockMsg:
		m.clock = string(msg)
	case logMsg:
		m.log = []engine.LogEntry(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("RetroCalc"))
	b.WriteString("  ")
	b.WriteString(clockStyle.Render(m.clock))
	b.WriteString("\n")

	opStyle := operationStyle
	if m.operation == engine.OperationError {
		opStyle = operationErrorStyle
	}
	b.WriteString(displayStyle.Render(
		opStyle.Render(m.operation) + "\n" + entryStyle.Render(m.entry),
	))
	b.WriteString("\n")

	for _, e := range m.log {
		style := logOKStyle
		if e.Status == engine.StatusError {
			style = logErrorStyle
		}
		b.WriteString(style.Render(e.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
