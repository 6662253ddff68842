package shell

import (
	"errors"
	"strings"
)

// ErrInvalidInput is returned for lines the tokenizer cannot represent.
var ErrInvalidInput = errors.New("invalid input")

// Tokenizer splits a line into whitespace-separated tokens. There is no
// quoting or escaping.
type Tokenizer struct {
	MaxArgs     int
	MaxTokenLen int
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Tokenize returns at most MaxArgs tokens, each cut to MaxTokenLen-1 bytes.
// Tokens beyond MaxArgs are dropped.
func (t Tokenizer) Tokenize(line string) ([]string, error) {
	if strings.IndexByte(line, 0) >= 0 {
		return nil, ErrInvalidInput
	}
	var tokens []string
	i := 0
	for i < len(line) && len(tokens) < t.MaxArgs {
		for i < len(line) && isSeparator(line[i]) {
			i++
		}
		if i == len(line) {
			break
		}
		start := i
		for i < len(line) && !isSeparator(line[i]) {
			i++
		}
		token := line[start:i]
		if limit := t.MaxTokenLen - 1; limit >= 0 && len(token) > limit {
			token = token[:limit]
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
