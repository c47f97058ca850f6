package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"retrocalc/internal/engine"
)

// Messages carrying engine and clock output into the model.
type (
	entryMsg     string
	operationMsg string
	clockMsg     string
	logMsg       []engine.LogEntry
)

// Sender is the part of *tea.Program the sink needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Sink implements engine.Display and engine.LogSink by forwarding updates
// to a running program. Updates before Attach are dropped; the model starts
// out showing the cleared state.
type Sink struct {
	mu     sync.Mutex
	sender Sender
	log    *engine.Log
}

func NewSink() *Sink {
	return &Sink{log: engine.NewLog(engine.MaxLogEntries)}
}

// Attach starts forwarding to s.
func (s *Sink) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *Sink) send(msg tea.Msg) {
	s.mu.Lock()
	sender := s.sender
	s.mu.Unlock()

	if sender != nil {
		sender.Send(msg)
	}
}

func (s *Sink) SetEntry(text string)     { s.send(entryMsg(text)) }
func (s *Sink) SetOperation(text string) { s.send(operationMsg(text)) }

// SetClock is the clock poller's sink.
func (s *Sink) SetClock(text string) { s.send(clockMsg(text)) }

// Append records entry and sends the whole capped log.
func (s *Sink) Append(entry engine.LogEntry) {
	s.log.Append(entry)
	s.send(logMsg(s.log.Entries()))
}
