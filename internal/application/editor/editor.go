// Package editor implements the interactive line editor: a byte-at-a-time
// automaton over the console that handles cursor keys, history recall and
// tab completion.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/doeshing/bareshell/internal/ports"
)

// ErrInvalidCapacity is returned by ReadLine for a non-positive capacity.
var ErrInvalidCapacity = errors.New("line capacity must be positive")

// Control bytes.
const (
	keyCtrlD     = 0x04
	keyBell      = 0x07
	keyBackspace = 0x08
	keyTab       = 0x09
	keyEscape    = 0x1B
	keyDelete    = 0x7F
)

const (
	completionColumns = 4
	completionWidth   = 16
)

type state int

const (
	stateNormal state = iota
	stateEscape
	stateBracket
	stateExtended
)

// Editor reads lines from a console.
type Editor struct {
	console   ports.Console
	history   ports.HistoryNavigator
	completer ports.Completer
	prompt    func() string
}

// New builds an editor. prompt is called whenever the line is redrawn so
// that color changes take effect immediately.
func New(console ports.Console, history ports.HistoryNavigator, completer ports.Completer, prompt func() string) *Editor {
	if prompt == nil {
		prompt = func() string { return "" }
	}
	return &Editor{console: console, history: history, completer: completer, prompt: prompt}
}

// session is the state of one ReadLine call.
type session struct {
	*Editor
	line  *LineBuffer
	state state
	digit byte
	out   bytes.Buffer
}

// ReadLine reads one line of at most capacity-1 bytes. It returns io.EOF
// when Ctrl-D is pressed on an empty line and any console read error as is.
func (e *Editor) ReadLine(capacity int) (string, error) {
	if capacity <= 0 {
		return "", ErrInvalidCapacity
	}
	if e.history != nil {
		e.history.ResetNavigation()
	}
	s := &session{Editor: e, line: NewLineBuffer(capacity)}
	for {
		c, err := e.console.ReadByte()
		if err != nil {
			return "", err
		}
		done, err := s.feed(c)
		if flushErr := s.flush(); flushErr != nil {
			return "", flushErr
		}
		if err != nil {
			return "", err
		}
		if done {
			return s.line.String(), nil
		}
	}
}

func (s *session) flush() error {
	if s.out.Len() == 0 {
		return nil
	}
	_, err := s.console.Write(s.out.Bytes())
	s.out.Reset()
	if err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}

// feed advances the automaton by one byte. done is true once the line is
// complete.
func (s *session) feed(c byte) (done bool, err error) {
	switch s.state {
	case stateEscape:
		// anything but '[' is swallowed
		if c == '[' {
			s.state = stateBracket
		} else {
			s.state = stateNormal
		}
		return false, nil
	case stateBracket:
		s.state = stateNormal
		s.bracket(c)
		return false, nil
	case stateExtended:
		s.state = stateNormal
		if c == '~' {
			s.extended(s.digit)
		}
		return false, nil
	}

	switch {
	case c == keyEscape:
		s.state = stateEscape
	case c == '\r' || c == '\n':
		s.out.WriteByte('\n')
		return true, nil
	case c == keyCtrlD:
		if s.line.Len() == 0 {
			return false, io.EOF
		}
	case c == keyBackspace || c == keyDelete:
		s.backspace()
	case c == keyTab:
		s.complete()
	case c >= 0x20 && c <= 0x7E:
		s.insert(c)
	}
	return false, nil
}

func (s *session) bracket(c byte) {
	switch c {
	case 'A':
		if s.history == nil {
			return
		}
		if line, ok := s.history.Previous(); ok {
			s.recall(line)
		}
	case 'B':
		if s.history == nil {
			return
		}
		if line, ok := s.history.Next(); ok {
			s.recall(line)
		}
	case 'C':
		if c := s.line.CharAtCursor(); s.line.Right() {
			s.out.WriteByte(c)
		}
	case 'D':
		if s.line.Left() {
			s.out.WriteByte('\b')
		}
	case 'H':
		s.home()
	case 'F':
		s.end()
	default:
		if c >= '0' && c <= '9' {
			s.digit = c
			s.state = stateExtended
		}
	}
}

func (s *session) extended(digit byte) {
	switch digit {
	case '1':
		s.home()
	case '3':
		s.delete()
	case '4':
		s.end()
	}
}

func (s *session) insert(c byte) {
	if !s.line.Insert(c) {
		return
	}
	s.out.WriteByte(c)
	s.redrawTail(0)
}

func (s *session) backspace() {
	if !s.line.Backspace() {
		return
	}
	s.out.WriteByte('\b')
	s.redrawTail(1)
}

func (s *session) delete() {
	if !s.line.Delete() {
		return
	}
	s.redrawTail(1)
}

func (s *session) home() {
	s.moveBack(s.line.Home())
}

func (s *session) end() {
	tail := s.line.Tail()
	s.line.End()
	s.out.WriteString(tail)
}

// recall replaces the line with a history entry and redraws it.
func (s *session) recall(text string) {
	s.line.Replace(text)
	s.out.WriteString("\r\x1b[K")
	s.out.WriteString(s.prompt())
	s.out.WriteString(s.line.String())
}

// redrawTail writes the text after the cursor plus pad blanks and walks the
// cursor back over them.
func (s *session) redrawTail(pad int) {
	tail := s.line.Tail()
	s.out.WriteString(tail)
	for i := 0; i < pad; i++ {
		s.out.WriteByte(' ')
	}
	s.moveBack(len(tail) + pad)
}

func (s *session) moveBack(n int) {
	for i := 0; i < n; i++ {
		s.out.WriteByte('\b')
	}
}

func (s *session) complete() {
	if s.completer == nil {
		return
	}
	if !s.line.AtEnd() && s.line.CharAtCursor() != ' ' {
		return
	}
	word := s.line.Word()
	if word == "" {
		return
	}
	matches := s.completer.Complete(word)
	switch len(matches) {
	case 0:
		s.out.WriteByte(keyBell)
	case 1:
		suffix := matches[0][len(word):]
		if suffix == "" {
			return
		}
		if !s.line.InsertString(suffix) {
			s.out.WriteByte(keyBell)
			return
		}
		s.out.WriteString(suffix)
		s.redrawTail(0)
	default:
		s.listCompletions(matches)
	}
}

func (s *session) listCompletions(matches []string) {
	s.out.WriteString("\nPossible completions:\n")
	for i, m := range matches {
		fmt.Fprintf(&s.out, "%-*s", completionWidth, m)
		if i%completionColumns == completionColumns-1 {
			s.out.WriteByte('\n')
		}
	}
	if len(matches)%completionColumns != 0 {
		s.out.WriteByte('\n')
	}
	s.out.WriteString(s.prompt())
	s.out.WriteString(s.line.String())
	s.moveBack(len(s.line.Tail()))
}

var _ ports.LineReader = (*Editor)(nil)
