package engine

import "sync"

// MaxLogEntries is how many history lines a Log keeps.
const MaxLogEntries = 10

// Status tags a log entry.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// LogEntry is one history line.
type LogEntry struct {
	Message string
	Status  Status
}

// Log is a LogSink holding the most recent entries, newest first.
type Log struct {
	mu      sync.Mutex
	limit   int
	entries []LogEntry
}

// NewLog returns a Log that keeps at most limit entries. A non-positive
// limit means MaxLogEntries.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = MaxLogEntries
	}
	return &Log{limit: limit}
}

// Append records e as the newest entry, dropping the oldest past the limit.
func (l *Log) Append(e LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]LogEntry, 0, min(len(l.entries)+1, l.limit))
	entries = append(entries, e)
	for _, old := range l.entries {
		if len(entries) == l.limit {
			break
		}
		entries = append(entries, old)
	}
	l.entries = entries
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
