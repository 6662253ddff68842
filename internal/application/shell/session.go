// Package shell is the command engine: it turns completed input lines into
// handler calls through the batch parser, alias expansion, the tokenizer and
// the command registry, and keeps the session's history and error log.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/pkg/ansi"
	"github.com/doeshing/bareshell/internal/ports"
)

// Options configures a Session.
type Options struct {
	ID      string
	Prompt  string
	Limits  domain.Limits
	Printer *ansi.Printer
	Stats   ports.StatsRecorder
	Logger  ports.Logger
}

// Session owns every piece of interactive state. It is not safe for
// concurrent use.
type Session struct {
	id        string
	prompt    string
	limits    domain.Limits
	registry  *Registry
	aliases   *AliasTable
	history   *History
	errors    *ErrorLog
	tokenizer Tokenizer
	completer *NameCompleter
	printer   *ansi.Printer
	stats     ports.StatsRecorder
	logger    ports.Logger
	reader    ports.LineReader
	started   time.Time
	halted    bool
}

// NewSession builds an empty session. Commands are registered afterwards,
// then built-in aliases, so alias names can be checked against commands.
func NewSession(opts Options) (*Session, error) {
	if opts.Printer == nil {
		return nil, errors.New("session requires a printer")
	}
	if opts.Prompt == "" {
		opts.Prompt = domain.DefaultPrompt
	}
	s := &Session{
		id:       opts.ID,
		prompt:   opts.Prompt,
		limits:   opts.Limits,
		registry: NewRegistry(opts.Limits.MaxCommands),
		history:  NewHistory(opts.Limits.HistorySize),
		errors:   NewErrorLog(opts.Limits.ErrorLogSize),
		tokenizer: Tokenizer{
			MaxArgs:     opts.Limits.MaxArgs,
			MaxTokenLen: opts.Limits.MaxTokenLen,
		},
		printer: opts.Printer,
		stats:   opts.Stats,
		logger:  opts.Logger,
		started: time.Now(),
	}
	s.aliases = NewAliasTable(opts.Limits.MaxAliases, s.registry.Has)
	s.completer = NewNameCompleter(s.registry, s.aliases, opts.Limits.MaxCompletions)
	return s, nil
}

// InstallAliases adds the configured built-in aliases.
func (s *Session) InstallAliases(settings []domain.AliasSetting) error {
	for _, a := range settings {
		if err := s.aliases.Add(a.Name, a.Expansion, true); err != nil {
			return fmt.Errorf("built-in alias %q: %w", a.Name, err)
		}
	}
	return nil
}

// AttachReader sets the line source used by Run and by handlers that ask
// for confirmation.
func (s *Session) AttachReader(r ports.LineReader) {
	s.reader = r
}

func (s *Session) ID() string                 { return s.id }
func (s *Session) Registry() *Registry        { return s.registry }
func (s *Session) Aliases() *AliasTable       { return s.aliases }
func (s *Session) History() *History          { return s.history }
func (s *Session) ErrorLog() *ErrorLog        { return s.errors }
func (s *Session) Completer() *NameCompleter  { return s.completer }
func (s *Session) Printer() *ansi.Printer     { return s.printer }
func (s *Session) Stats() ports.StatsRecorder { return s.stats }
func (s *Session) Limits() domain.Limits      { return s.limits }
func (s *Session) Started() time.Time         { return s.started }
func (s *Session) Reader() ports.LineReader   { return s.reader }

// Prompt renders the prompt with the current color setting.
func (s *Session) Prompt() string {
	return s.printer.Prompt(s.prompt)
}

// Halt makes Run return after the current line.
func (s *Session) Halt() {
	s.halted = true
}

// Halted reports whether a handler asked the session to stop.
func (s *Session) Halted() bool {
	return s.halted
}

// Fail reports an error to the console and records it in the error log.
func (s *Session) Fail(kind domain.ErrorKind, command, detail string) domain.ErrorKind {
	msg := "Error: " + kind.Message()
	if detail != "" {
		msg += " (" + detail + ")"
	}
	s.printer.Error(msg)
	entry := s.errors.Record(kind, command, detail)
	s.log().Debug("error recorded", map[string]interface{}{
		"kind":      kind.String(),
		"command":   entry.Command,
		"context":   entry.Context,
		"timestamp": entry.Timestamp,
	})
	return kind
}

// FailWith reports err using its kind, or kind when err carries none.
func (s *Session) FailWith(command string, err error) domain.ErrorKind {
	var se *domain.ShellError
	if errors.As(err, &se) {
		return s.Fail(se.Kind, command, se.Context)
	}
	return s.Fail(domain.KindOf(err), command, err.Error())
}

// Run is the read-execute loop. It returns nil at end of input or when a
// handler halts the session, and the context error on cancellation. A
// blocked read is not interrupted.
func (s *Session) Run(ctx context.Context) error {
	if s.reader == nil {
		return errors.New("session has no line reader")
	}
	s.log().Info("session started", map[string]interface{}{"session": s.id})
	defer s.log().Info("session ended", map[string]interface{}{"session": s.id})

	for !s.halted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.printer.Print(s.Prompt())
		line, err := s.reader.ReadLine(s.limits.InputSize)
		if errors.Is(err, io.EOF) {
			s.printer.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		s.Execute(line)
	}
	return nil
}

func (s *Session) log() ports.Logger {
	if s.logger == nil {
		return nopLogger{}
	}
	return s.logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}
