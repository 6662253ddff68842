package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestTerminalReadsBytes(t *testing.T) {
	term := New(strings.NewReader("ab"), io.Discard)
	for _, want := range []byte("ab") {
		got, err := term.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte error: %v", err)
		}
		if got != want {
			t.Fatalf("ReadByte = %q, want %q", got, want)
		}
	}
	if _, err := term.ReadByte(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestTerminalWriteNewlines(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader(""), &out)
	if err := term.EnableRaw(); err != nil {
		t.Fatalf("EnableRaw on a pipe should be a no-op: %v", err)
	}
	if term.Raw() {
		t.Fatal("non-terminal streams must not enter raw mode")
	}
	if _, err := term.Write([]byte("a\nb")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if out.String() != "a\nb" {
		t.Fatalf("cooked output should pass through, got %q", out.String())
	}

	out.Reset()
	term.raw = true
	n, err := term.Write([]byte("a\nb\n"))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if n != 4 || out.String() != "a\r\nb\r\n" {
		t.Fatalf("raw output = %q (n=%d)", out.String(), n)
	}
	if err := term.WriteByte('\n'); err != nil {
		t.Fatalf("WriteByte error: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\r\n\r\n") {
		t.Fatalf("WriteByte should expand newline, got %q", out.String())
	}
	term.raw = false
}

func TestIsTerminalWriter(t *testing.T) {
	if IsTerminalWriter(&bytes.Buffer{}) {
		t.Fatal("buffer is not a terminal")
	}
}
