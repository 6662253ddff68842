// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The shell core (line editor, dispatcher, alias and batch engines) depends
// only on these interfaces. Adapters in the infrastructure layer provide the
// console transport, the simulated machine memory, the bump allocator, the
// statistics store, configuration and logging.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/bareshell/internal/domain"
)

// ConfigProvider loads the latest configuration.
// Implementations typically read from ~/.bareshell/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Console is the byte-level transport. ReadByte blocks until a byte is
// available; there is no timeout and no cancellation.
type Console interface {
	ReadByte() (byte, error)
	WriteByte(c byte) error
	Write(p []byte) (int, error)
}

// LineReader reads one edited line. Handlers use it to prompt for input.
type LineReader interface {
	ReadLine(capacity int) (string, error)
}

// HistoryNavigator is the line editor's view of command history.
type HistoryNavigator interface {
	// Previous steps back one entry. ok is false past the oldest entry.
	Previous() (line string, ok bool)
	// Next steps forward one entry. Stepping past the newest entry yields
	// an empty line; ok is false when not navigating.
	Next() (line string, ok bool)
	// ResetNavigation returns to the position after the newest entry.
	ResetNavigation()
}

// Completer returns command and alias names starting with prefix.
type Completer interface {
	Complete(prefix string) []string
}

// Memory is the simulated physical address space.
type Memory interface {
	Read(addr uint64, width int) (uint64, error)
	Write(addr uint64, width int, value uint64) error
	Mapped(addr uint64) bool
}

// Allocator is the bump allocator. Memory is never reclaimed.
type Allocator interface {
	Allocate(size uint64) (uint64, error)
	Dup(text string) (uint64, error)
	Stats() domain.HeapStats
}

// StatsRecorder keeps per-command execution statistics for the session.
type StatsRecorder interface {
	Record(ctx context.Context, name string, elapsed time.Duration, result domain.ErrorKind) error
	Summary(ctx context.Context) (domain.StatsSummary, error)
	Reset(ctx context.Context) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
