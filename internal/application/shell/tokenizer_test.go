package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tok := Tokenizer{MaxArgs: 16, MaxTokenLen: 32}
	long := strings.Repeat("a", 40)
	many := strings.TrimSpace(strings.Repeat("x ", 20))

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"simple", "echo hello world", []string{"echo", "hello", "world"}},
		{"mixed whitespace", "  peek\t0x1000 \r\n", []string{"peek", "0x1000"}},
		{"blank", " \t ", nil},
		{"empty", "", nil},
		{"truncated token", "echo " + long, []string{"echo", long[:31]}},
		{"excess tokens dropped", many, strings.Fields(many)[:16]},
		{"no quoting", `echo "a b"`, []string{"echo", `"a`, `b"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.Tokenize(tt.line)
			if err != nil {
				t.Fatalf("Tokenize error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeRejectsNUL(t *testing.T) {
	tok := Tokenizer{MaxArgs: 16, MaxTokenLen: 32}
	if _, err := tok.Tokenize("echo\x00x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
