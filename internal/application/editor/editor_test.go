package editor

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type scriptedConsole struct {
	in  []byte
	out bytes.Buffer
}

func (c *scriptedConsole) ReadByte() (byte, error) {
	if len(c.in) == 0 {
		return 0, io.EOF
	}
	b := c.in[0]
	c.in = c.in[1:]
	return b, nil
}

func (c *scriptedConsole) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

func (c *scriptedConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

type sliceHistory struct {
	lines  []string
	offset int
	resets int
}

func (h *sliceHistory) Previous() (string, bool) {
	if h.offset >= len(h.lines) {
		return "", false
	}
	h.offset++
	return h.lines[len(h.lines)-h.offset], true
}

func (h *sliceHistory) Next() (string, bool) {
	if h.offset == 0 {
		return "", false
	}
	h.offset--
	if h.offset == 0 {
		return "", true
	}
	return h.lines[len(h.lines)-h.offset], true
}

func (h *sliceHistory) ResetNavigation() {
	h.offset = 0
	h.resets++
}

type prefixCompleter []string

func (p prefixCompleter) Complete(prefix string) []string {
	var out []string
	for _, name := range p {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

const (
	up     = "\x1b[A"
	down   = "\x1b[B"
	right  = "\x1b[C"
	left   = "\x1b[D"
	home   = "\x1b[H"
	end    = "\x1b[F"
	home1  = "\x1b[1~"
	end4   = "\x1b[4~"
	del    = "\x1b[3~"
	prompt = "OS> "
)

var commands = prefixCompleter{"help", "history", "echo", "clear", "calc", "color"}

func newEditor(input string, hist *sliceHistory) (*Editor, *scriptedConsole) {
	console := &scriptedConsole{in: []byte(input)}
	if hist == nil {
		hist = &sliceHistory{}
	}
	return New(console, hist, commands, func() string { return prompt }), console
}

func TestReadLineEditing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "echo hi\r", "echo hi"},
		{"newline terminator", "help\n", "help"},
		{"backspace", "helpx\b\r", "help"},
		{"del byte", "helpx\x7f\r", "help"},
		{"insert in middle", "hep" + left + "l\r", "help"},
		{"delete at cursor", "heelp" + left + left + left + del + "\r", "help"},
		{"home and end", "elp" + home + "h" + end + "!\r", "help!"},
		{"alternate home and end", "elp" + home1 + "h" + end4 + "!\r", "help!"},
		{"left clamps", "a" + left + left + left + "b\r", "ba"},
		{"right clamps", "a" + right + right + "b\r", "ab"},
		{"unknown bracket final ignored", "a\x1b[Zb\r", "ab"},
		{"unknown extended ignored", "a\x1b[5~b\r", "ab"},
		{"escape without bracket drops next", "a\x1bxb\r", "ab"},
		{"control bytes ignored", "a\x01\x02b\r", "ab"},
		{"ctrl-d on non-empty ignored", "ab\x04\r", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, _ := newEditor(tt.input, nil)
			got, err := ed.ReadLine(256)
			if err != nil {
				t.Fatalf("ReadLine error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ReadLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertThenBackspaceRestoresLine(t *testing.T) {
	for cursor := 0; cursor <= 4; cursor++ {
		input := "abcd" + strings.Repeat(left, 4-cursor) + "X\b\r"
		ed, _ := newEditor(input, nil)
		got, err := ed.ReadLine(256)
		if err != nil {
			t.Fatalf("ReadLine error: %v", err)
		}
		if got != "abcd" {
			t.Fatalf("cursor %d: got %q", cursor, got)
		}
	}
}

func TestReadLineEchoSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"insert echoes", "ab\r", "ab\n"},
		{"insert mid redraws suffix", "ac" + left + "b\r", "ac\bbc\b\n"},
		{"backspace redraws with blank", "ab\b\r", "ab\b \b\n"},
		{"backspace mid", "abc" + left + "\b\r", "abc\b\bc \b\b\n"},
		{"delete at cursor", "ab" + left + del + "\r", "ab\b \b\n"},
		{"home walks back", "ab" + home + "\r", "ab\b\b\n"},
		{"end rewrites", "ab" + home + end + "\r", "ab\b\bab\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, console := newEditor(tt.input, nil)
			if _, err := ed.ReadLine(256); err != nil {
				t.Fatalf("ReadLine error: %v", err)
			}
			if got := console.out.String(); got != tt.want {
				t.Fatalf("echo = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadLineCapacity(t *testing.T) {
	ed, _ := newEditor("abcdef\r", nil)
	got, err := ed.ReadLine(4)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if got != "abc" {
		t.Fatalf("expected content capped at capacity-1, got %q", got)
	}

	ed, console := newEditor("abc", nil)
	for _, capacity := range []int{0, -1} {
		if _, err := ed.ReadLine(capacity); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("ReadLine(%d) error = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
	if len(console.in) != 3 || console.out.Len() != 0 {
		t.Fatal("invalid capacity must not touch the console")
	}
}

func TestReadLineEOF(t *testing.T) {
	ed, _ := newEditor("\x04", nil)
	if _, err := ed.ReadLine(256); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on Ctrl-D, got %v", err)
	}
	ed, _ = newEditor("abc", nil)
	if _, err := ed.ReadLine(256); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at end of input, got %v", err)
	}
}

func TestHistoryRecall(t *testing.T) {
	hist := &sliceHistory{lines: []string{"echo one", "echo two"}}
	ed, console := newEditor(up+up+up+down+"\r", hist)
	got, err := ed.ReadLine(256)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if got != "echo two" {
		t.Fatalf("ReadLine = %q, want %q", got, "echo two")
	}
	if hist.resets != 1 {
		t.Fatalf("navigation should reset once per line, got %d", hist.resets)
	}
	want := "\r\x1b[KOS> echo two" + "\r\x1b[KOS> echo one" + "\r\x1b[KOS> echo two" + "\n"
	if diff := cmp.Diff(want, console.out.String()); diff != "" {
		t.Fatalf("echo mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryRecallPastNewestClears(t *testing.T) {
	hist := &sliceHistory{lines: []string{"help"}}
	ed, _ := newEditor("x"+up+down+"\r", hist)
	got, err := ed.ReadLine(256)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty line after stepping past newest, got %q", got)
	}
}

func TestHistoryRecallThenEdit(t *testing.T) {
	hist := &sliceHistory{lines: []string{"echo a"}}
	ed, _ := newEditor(up+"b\r", hist)
	got, err := ed.ReadLine(256)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if got != "echo ab" {
		t.Fatalf("ReadLine = %q", got)
	}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		echo  string
	}{
		{"single match", "hi\t\r", "history", "hi" + "story" + "\n"},
		{"zero matches beeps", "zz\t\r", "zz", "zz\a\n"},
		{"empty word does nothing", "\t\r", "", "\n"},
		{"after space is empty word", "echo \t\r", "echo ", "echo \n"},
		{"second word", "echo he\t\r", "echo help", "echo he" + "lp" + "\n"},
		{"mid word ignored", "hi" + left + "\t\r", "hi", "hi\b\n"},
		{"exact match no-op", "help\t\r", "help", "help\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, console := newEditor(tt.input, nil)
			got, err := ed.ReadLine(256)
			if err != nil {
				t.Fatalf("ReadLine error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ReadLine = %q, want %q", got, tt.want)
			}
			if diff := cmp.Diff(tt.echo, console.out.String()); diff != "" {
				t.Fatalf("echo mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompletionBeforeSpace(t *testing.T) {
	ed, _ := newEditor("hi x"+left+left+"\t\r", nil)
	got, err := ed.ReadLine(256)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if got != "history x" {
		t.Fatalf("ReadLine = %q", got)
	}
}

func TestCompletionExceedsCapacity(t *testing.T) {
	ed, console := newEditor("hi\t\r", nil)
	got, err := ed.ReadLine(5)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if got != "hi" {
		t.Fatalf("line should be unchanged, got %q", got)
	}
	if !strings.Contains(console.out.String(), "\a") {
		t.Fatal("expected bell when completion does not fit")
	}
}

func TestCompletionListsCandidates(t *testing.T) {
	ed, console := newEditor("c\t\r", nil)
	got, err := ed.ReadLine(256)
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	if got != "c" {
		t.Fatalf("listing must not change the line, got %q", got)
	}
	want := "c" +
		"\nPossible completions:\n" +
		"clear           calc            color           \n" +
		"OS> c" +
		"\n"
	if diff := cmp.Diff(want, console.out.String()); diff != "" {
		t.Fatalf("echo mismatch (-want +got):\n%s", diff)
	}
}

func TestLineBufferReplaceTruncates(t *testing.T) {
	b := NewLineBuffer(4)
	b.Replace("abcdef")
	if b.String() != "abc" || b.Cursor() != 3 {
		t.Fatalf("unexpected buffer %q cursor %d", b.String(), b.Cursor())
	}
	if b.Insert('x') {
		t.Fatal("insert into a full buffer should fail")
	}
	if !b.Backspace() || b.String() != "ab" {
		t.Fatalf("backspace failed: %q", b.String())
	}
}
