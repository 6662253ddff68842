package commands

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/doeshing/bareshell/internal/ports"
)

// LineReader reads newline-terminated lines without editing or echo. It
// feeds scripts to a session and answers handler prompts from the same
// stream.
type LineReader struct {
	in *bufio.Reader
}

// NewLineReader wraps in.
func NewLineReader(in io.Reader) *LineReader {
	return &LineReader{in: bufio.NewReader(in)}
}

// ReadLine returns the next line without its terminator, cut to
// capacity-1 bytes. A final unterminated line is returned before io.EOF.
func (r *LineReader) ReadLine(capacity int) (string, error) {
	if capacity <= 0 {
		return "", errors.New("line capacity must be positive")
	}
	line, err := r.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) > capacity-1 {
		line = line[:capacity-1]
	}
	return line, nil
}

var _ ports.LineReader = (*LineReader)(nil)
