package shell

import (
	"errors"
	"strings"

	"github.com/doeshing/bareshell/internal/domain"
)

// ErrEmptyBatch is returned when a batch line has no command in it.
var ErrEmptyBatch = errors.New("empty command sequence")

// IsBatch reports whether line contains a batch operator. A single '&' or
// '|' is ordinary text.
func IsBatch(line string) bool {
	return strings.Contains(line, ";") || strings.Contains(line, "&&") || strings.Contains(line, "||")
}

// ParseBatch splits line on ';', '&&' and '||'. Empty segments are dropped,
// and the operator joining two kept segments is the last one seen between
// them. Segments past max are ignored.
func ParseBatch(line string, max int) (domain.BatchSequence, error) {
	var seq domain.BatchSequence
	pending := domain.OpNone
	start := 0

	flush := func(end int) {
		segment := strings.Trim(line[start:end], " \t")
		if segment == "" || len(seq.Steps) >= max {
			return
		}
		if n := len(seq.Steps); n > 0 {
			seq.Steps[n-1].Next = pending
		}
		seq.Steps = append(seq.Steps, domain.BatchStep{Command: segment})
		pending = domain.OpNone
	}

	for i := 0; i < len(line); i++ {
		op, width := operatorAt(line, i)
		if op == domain.OpNone {
			continue
		}
		flush(i)
		pending = op
		i += width - 1
		start = i + 1
	}
	flush(len(line))

	if len(seq.Steps) == 0 {
		return seq, ErrEmptyBatch
	}
	return seq, nil
}

func operatorAt(line string, i int) (domain.BatchOperator, int) {
	switch {
	case line[i] == ';':
		return domain.OpSequence, 1
	case strings.HasPrefix(line[i:], "&&"):
		return domain.OpAnd, 2
	case strings.HasPrefix(line[i:], "||"):
		return domain.OpOr, 2
	}
	return domain.OpNone, 0
}

// shouldRun decides whether the step after op executes given the result of
// the last executed step.
func shouldRun(op domain.BatchOperator, last domain.ErrorKind) bool {
	switch op {
	case domain.OpAnd:
		return last.OK()
	case domain.OpOr:
		return !last.OK()
	default:
		return true
	}
}
