// Package ansi renders colored console output. The color flag lives in the
// Printer so every session owns its own setting.
package ansi

import (
	"fmt"
	"io"
	"strings"
)

// Screen control sequences.
const (
	ClearScreen  = "\x1b[2J"
	ClearLine    = "\x1b[2K"
	ClearToEOL   = "\x1b[0K"
	ClearToBOL   = "\x1b[1K"
	CursorHome   = "\x1b[H"
	EraseLineEnd = "\x1b[K"
)

// Text attributes and colors.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Dim       = "\x1b[2m"
	Underline = "\x1b[4m"

	Black   = "\x1b[30m"
	Red     = "\x1b[31m"
	Green   = "\x1b[32m"
	Yellow  = "\x1b[33m"
	Blue    = "\x1b[34m"
	Magenta = "\x1b[35m"
	Cyan    = "\x1b[36m"
	White   = "\x1b[37m"

	BrightBlack   = "\x1b[90m"
	BrightRed     = "\x1b[91m"
	BrightGreen   = "\x1b[92m"
	BrightYellow  = "\x1b[93m"
	BrightBlue    = "\x1b[94m"
	BrightMagenta = "\x1b[95m"
	BrightCyan    = "\x1b[96m"
	BrightWhite   = "\x1b[97m"
)

// Printer writes optionally colored text.
type Printer struct {
	w       io.Writer
	enabled bool
}

// NewPrinter wraps w.
func NewPrinter(w io.Writer, colors bool) *Printer {
	return &Printer{w: w, enabled: colors}
}

// Writer exposes the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Enabled reports whether colors are on.
func (p *Printer) Enabled() bool {
	return p.enabled
}

// SetEnabled toggles colors.
func (p *Printer) SetEnabled(on bool) {
	p.enabled = on
}

// Paint wraps text in color codes when colors are on.
func (p *Printer) Paint(color, text string) string {
	if !p.enabled {
		return text
	}
	return color + text + Reset
}

// Printf formats to the writer.
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Println writes a line.
func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.w, args...)
}

// Print writes text as-is.
func (p *Printer) Print(text string) {
	io.WriteString(p.w, text)
}

// Line writes text in color followed by a newline.
func (p *Printer) Line(color, text string) {
	fmt.Fprintln(p.w, p.Paint(color, text))
}

func (p *Printer) Success(text string) { p.Line(Green, text) }
func (p *Printer) Warning(text string) { p.Line(Yellow, text) }
func (p *Printer) Info(text string)    { p.Line(Cyan, text) }
func (p *Printer) Error(text string)   { p.Line(Red, text) }

// Header prints a section title.
func (p *Printer) Header(text string) {
	p.Line(Cyan, "=== "+text+" ===")
}

// Prompt renders the shell prompt. The trailing "> " is colored separately
// from the name.
func (p *Printer) Prompt(prompt string) string {
	if !p.enabled {
		return prompt
	}
	name, tail := prompt, ""
	if i := strings.LastIndexByte(prompt, '>'); i >= 0 {
		name, tail = prompt[:i], prompt[i:]
	}
	return BrightBlue + name + White + tail + Reset
}
