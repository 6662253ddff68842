// Package console adapts the host terminal to the byte-level console port.
package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/doeshing/bareshell/internal/ports"
)

// Terminal reads keystrokes from in and writes to out. In raw mode the
// terminal no longer maps "\n" to "\r\n", so Write does it instead.
type Terminal struct {
	in       *bufio.Reader
	out      io.Writer
	fd       int
	raw      bool
	oldState *term.State
}

// New wraps arbitrary streams. No terminal mode is changed.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, fd: -1}
}

// NewStdio wraps the process's standard streams.
func NewStdio() *Terminal {
	t := New(os.Stdin, os.Stdout)
	t.fd = int(os.Stdin.Fd())
	return t
}

// IsInteractive reports whether both standard streams are terminals.
func IsInteractive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

// IsTerminalWriter reports whether w is a terminal, for color defaults.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// EnableRaw puts stdin in raw mode when it is a terminal. It is a no-op
// for pipes and files. Restore undoes it.
func (t *Terminal) EnableRaw() error {
	if t.raw || t.fd < 0 || !isTerminal(uintptr(t.fd)) {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.oldState = state
	t.raw = true
	return nil
}

// Restore returns the terminal to the mode it had before EnableRaw.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}
	t.raw = false
	if err := term.Restore(t.fd, t.oldState); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Raw reports whether raw mode is active.
func (t *Terminal) Raw() bool {
	return t.raw
}

// ReadByte blocks until a byte arrives.
func (t *Terminal) ReadByte() (byte, error) {
	return t.in.ReadByte()
}

func (t *Terminal) WriteByte(c byte) error {
	_, err := t.Write([]byte{c})
	return err
}

// Write sends p, expanding bare newlines in raw mode. It reports len(p) on
// success.
func (t *Terminal) Write(p []byte) (int, error) {
	if !t.raw || bytes.IndexByte(p, '\n') < 0 {
		return t.out.Write(p)
	}
	expanded := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := t.out.Write(expanded); err != nil {
		return 0, err
	}
	return len(p), nil
}

var _ ports.Console = (*Terminal)(nil)
