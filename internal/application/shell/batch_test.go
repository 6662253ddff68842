package shell

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/bareshell/internal/domain"
)

func TestParseBatch(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []domain.BatchStep
	}{
		{
			name: "sequence",
			line: "echo a ; echo b ; badcmd",
			want: []domain.BatchStep{
				{Command: "echo a", Next: domain.OpSequence},
				{Command: "echo b", Next: domain.OpSequence},
				{Command: "badcmd"},
			},
		},
		{
			name: "mixed operators",
			line: "peek 0 && echo ok || echo failed",
			want: []domain.BatchStep{
				{Command: "peek 0", Next: domain.OpAnd},
				{Command: "echo ok", Next: domain.OpOr},
				{Command: "echo failed"},
			},
		},
		{
			name: "empty segments dropped",
			line: " ; echo a ;; \t; echo b ;",
			want: []domain.BatchStep{
				{Command: "echo a", Next: domain.OpSequence},
				{Command: "echo b"},
			},
		},
		{
			name: "last operator between kept segments wins",
			line: "echo a && ; || echo b",
			want: []domain.BatchStep{
				{Command: "echo a", Next: domain.OpOr},
				{Command: "echo b"},
			},
		},
		{
			name: "single ampersand and pipe are text",
			line: "echo a & b | c ; help",
			want: []domain.BatchStep{
				{Command: "echo a & b | c", Next: domain.OpSequence},
				{Command: "help"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBatch(tt.line, 10)
			if err != nil {
				t.Fatalf("ParseBatch error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got.Steps); diff != "" {
				t.Fatalf("steps mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseBatchLimit(t *testing.T) {
	var parts []string
	for i := 0; i < 15; i++ {
		parts = append(parts, fmt.Sprintf("echo %d", i))
	}
	got, err := ParseBatch(strings.Join(parts, ";"), 10)
	if err != nil {
		t.Fatalf("ParseBatch error: %v", err)
	}
	if got.Len() != 10 {
		t.Fatalf("expected 10 steps, got %d", got.Len())
	}
	if got.Steps[9].Next != domain.OpNone {
		t.Fatalf("last step should have no operator, got %v", got.Steps[9].Next)
	}
}

func TestParseBatchEmpty(t *testing.T) {
	for _, line := range []string{";", " ; ; ", "&&", "||;&&"} {
		if _, err := ParseBatch(line, 10); !errors.Is(err, ErrEmptyBatch) {
			t.Fatalf("ParseBatch(%q) error = %v, want ErrEmptyBatch", line, err)
		}
	}
}

func TestIsBatch(t *testing.T) {
	tests := map[string]bool{
		"echo a":      false,
		"echo a & b":  false,
		"echo a | b":  false,
		"echo a; b":   true,
		"echo a && b": true,
		"echo a || b": true,
	}
	for line, want := range tests {
		if got := IsBatch(line); got != want {
			t.Fatalf("IsBatch(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestShouldRun(t *testing.T) {
	if !shouldRun(domain.OpSequence, domain.KindNotFound) {
		t.Fatal("sequence always runs")
	}
	if shouldRun(domain.OpAnd, domain.KindNotFound) || !shouldRun(domain.OpAnd, domain.KindSuccess) {
		t.Fatal("and runs only after success")
	}
	if shouldRun(domain.OpOr, domain.KindSuccess) || !shouldRun(domain.OpOr, domain.KindRange) {
		t.Fatal("or runs only after failure")
	}
}
