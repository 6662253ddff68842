package shell

import (
	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/pkg/ring"
	"github.com/doeshing/bareshell/internal/ports"
)

// History is the bounded command history with recall navigation.
type History struct {
	entries *ring.Buffer[domain.HistoryEntry]
	seq     uint64
	// offset counts steps back from the newest entry; 0 means the editor
	// is not recalling anything.
	offset int
}

// NewHistory returns an empty history holding at most capacity lines.
func NewHistory(capacity int) *History {
	return &History{entries: ring.New[domain.HistoryEntry](capacity)}
}

// Add records line unless it is empty or equal to the newest entry. Lines
// are cut to MaxCommandLen-1 bytes. Navigation is reset either way.
func (h *History) Add(line string) {
	h.offset = 0
	if line == "" {
		return
	}
	if len(line) > domain.MaxCommandLen-1 {
		line = line[:domain.MaxCommandLen-1]
	}
	if last, ok := h.entries.Last(); ok && last.Command == line {
		return
	}
	h.seq++
	h.entries.Push(domain.HistoryEntry{Seq: h.seq, Command: line})
}

// Entries returns the stored lines, oldest first.
func (h *History) Entries() []domain.HistoryEntry {
	return h.entries.Items()
}

func (h *History) Len() int { return h.entries.Len() }

func (h *History) Cap() int { return h.entries.Cap() }

func (h *History) Full() bool { return h.entries.Full() }

func (h *History) Previous() (string, bool) {
	if h.offset >= h.entries.Len() {
		return "", false
	}
	h.offset++
	entry, _ := h.entries.At(h.entries.Len() - h.offset)
	return entry.Command, true
}

func (h *History) Next() (string, bool) {
	if h.offset == 0 {
		return "", false
	}
	h.offset--
	if h.offset == 0 {
		return "", true
	}
	entry, _ := h.entries.At(h.entries.Len() - h.offset)
	return entry.Command, true
}

// Clear drops every entry. Sequence numbers keep counting.
func (h *History) Clear() {
	h.entries.Clear()
	h.offset = 0
}

func (h *History) ResetNavigation() {
	h.offset = 0
}

var _ ports.HistoryNavigator = (*History)(nil)
