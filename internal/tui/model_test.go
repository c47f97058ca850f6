package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"retrocalc/internal/clock"
	"retrocalc/internal/engine"
)

type recordingQueue struct {
	cmds []engine.Command
}

func (q *recordingQueue) Submit(cmd engine.Command) bool {
	q.cmds = append(q.cmds, cmd)
	return true
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdateDecodesKeys(t *testing.T) {
	q := &recordingQueue{}
	var m tea.Model = New(q)

	keys := []tea.KeyMsg{
		runeKey("3"), runeKey("+"), runeKey("4"), runeKey("x"), runeKey("."),
		runeKey("/"), runeKey("n"), runeKey("%"), runeKey("="),
		{Type: tea.KeyEnter}, {Type: tea.KeyEsc}, runeKey("c"), runeKey("z"),
	}
	for _, k := range keys {
		m, _ = m.Update(k)
	}

	want := []engine.Command{
		engine.DigitKey("3"), engine.OperatorKey(engine.OpAdd), engine.DigitKey("4"),
		engine.OperatorKey(engine.OpMultiply), engine.DigitKey("."),
		engine.OperatorKey(engine.OpDivide), engine.Sign, engine.Percent, engine.Equals,
		engine.Equals, engine.Clear, engine.Clear,
	}
	if len(q.cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d: %v", len(want), len(q.cmds), q.cmds)
	}
	for i := range want {
		if q.cmds[i] != want[i] {
			t.Fatalf("command %d: expected %v, got %v", i, want[i], q.cmds[i])
		}
	}
}

func TestUpdateQuit(t *testing.T) {
	m := New(&recordingQueue{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestViewReflectsSinkMessages(t *testing.T) {
	var m tea.Model = New(&recordingQueue{})

	view := m.View()
	if !strings.Contains(view, clock.Placeholder) || !strings.Contains(view, engine.OperationReady) {
		t.Fatalf("expected initial view to show placeholder clock and Ready, got:\n%s", view)
	}

	m, _ = m.Update(entryMsg("7"))
	m, _ = m.Update(operationMsg("3 +"))
	m, _ = m.Update(clockMsg("12:34:56"))
	m, _ = m.Update(logMsg{
		{Message: "overflow", Status: engine.StatusError},
		{Message: "3 + 4 = 7 (2024-01-01T00:00:00Z)", Status: engine.StatusOK},
	})

	view = m.View()
	for _, want := range []string{"7", "3 +", "12:34:56", "overflow", "3 + 4 = 7 (2024-01-01T00:00:00Z)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Index(view, "overflow") > strings.Index(view, "3 + 4 = 7") {
		t.Fatal("expected newest log entry to render first")
	}
}

type recordingSender struct {
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) { s.msgs = append(s.msgs, msg) }

func TestSinkForwardsAfterAttach(t *testing.T) {
	sink := NewSink()
	sink.SetEntry("dropped")

	sender := &recordingSender{}
	sink.Attach(sender)

	sink.SetEntry("5")
	sink.SetOperation("5 ×")
	sink.SetClock("--:--:--")
	for i := 0; i < engine.MaxLogEntries+2; i++ {
		sink.Append(engine.LogEntry{Message: "line", Status: engine.StatusOK})
	}

	if len(sender.msgs) != 3+engine.MaxLogEntries+2 {
		t.Fatalf("unexpected message count %d", len(sender.msgs))
	}
	if sender.msgs[0] != entryMsg("5") || sender.msgs[1] != operationMsg("5 ×") || sender.msgs[2] != clockMsg("--:--:--") {
		t.Fatalf("unexpected messages %v", sender.msgs[:3])
	}
	last, ok := sender.msgs[len(sender.msgs)-1].(logMsg)
	if !ok || len(last) != engine.MaxLogEntries {
		t.Fatalf("expected a capped log message, got %#v", sender.msgs[len(sender.msgs)-1])
	}
}
