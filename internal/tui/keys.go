package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"retrocalc/internal/engine"
)

type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Equals    key.Binding
	Clear     key.Binding
	Sign      key.Binding
	Percent   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."),
			key.WithHelp("0-9 .", "enter number"),
		),
		Operators: key.NewBinding(
			key.WithKeys("+", "-", "*", "x", "/"),
			key.WithHelp("+ - * /", "operator"),
		),
		Equals: key.NewBinding(
			key.WithKeys("=", "enter"),
			key.WithHelp("= ⏎", "calculate"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "esc"),
			key.WithHelp("c esc", "clear"),
		),
		Sign: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "±"),
		),
		Percent: key.NewBinding(
			key.WithKeys("%"),
			key.WithHelp("%", "percent"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Operators, k.Equals},
		{k.Clear, k.Sign, k.Percent},
		{k.Help, k.Quit},
	}
}

// command decodes a key press into an engine command.
func (k keyMap) command(msg tea.KeyMsg) (engine.Command, bool) {
	s := msg.String()
	switch {
	case key.Matches(msg, k.Digits):
		return engine.DigitKey(s), true
	case key.Matches(msg, k.Operators):
		op, ok := engine.ParseOperator(s)
		return engine.OperatorKey(op), ok
	case key.Matches(msg, k.Equals):
		return engine.Equals, true
	case key.Matches(msg, k.Clear):
		return engine.Clear, true
	case key.Matches(msg, k.Sign):
		return engine.Sign, true
	case key.Matches(msg, k.Percent):
		return engine.Percent, true
	}
	return engine.Command{}, false
}
