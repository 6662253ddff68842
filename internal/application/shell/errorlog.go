package shell

import (
	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/pkg/ring"
)

// ErrorLog keeps the most recent failures. Timestamps come from a counter
// that only moves forward, so entries stay ordered across evictions.
type ErrorLog struct {
	entries *ring.Buffer[domain.ErrorLogEntry]
	clock   uint64
}

// NewErrorLog returns an empty log holding at most capacity entries.
func NewErrorLog(capacity int) *ErrorLog {
	return &ErrorLog{entries: ring.New[domain.ErrorLogEntry](capacity)}
}

// Record appends an entry, evicting the oldest when full.
func (l *ErrorLog) Record(kind domain.ErrorKind, command, context string) domain.ErrorLogEntry {
	if command == "" {
		command = "unknown"
	}
	l.clock++
	entry := domain.ErrorLogEntry{
		Kind:      kind,
		Command:   truncate(command, domain.MaxErrorCommandLen-1),
		Context:   truncate(context, domain.MaxErrorContextLen-1),
		Timestamp: l.clock,
	}
	l.entries.Push(entry)
	return entry
}

// Clear empties the log. The clock is not rewound.
func (l *ErrorLog) Clear() {
	l.entries.Clear()
}

// Entries returns the log, oldest first.
func (l *ErrorLog) Entries() []domain.ErrorLogEntry {
	return l.entries.Items()
}

func (l *ErrorLog) Len() int { return l.entries.Len() }

func (l *ErrorLog) Full() bool { return l.entries.Full() }

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
