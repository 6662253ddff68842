package editor

import "strings"

// LineBuffer is the editable line. Content never exceeds capacity-1 bytes
// and the cursor stays within [0, Len()].
type LineBuffer struct {
	data     []byte
	cursor   int
	capacity int
}

// NewLineBuffer returns an empty buffer for a line of capacity bytes
// including the terminator slot.
func NewLineBuffer(capacity int) *LineBuffer {
	return &LineBuffer{data: make([]byte, 0, capacity), capacity: capacity}
}

func (b *LineBuffer) String() string { return string(b.data) }

func (b *LineBuffer) Len() int { return len(b.data) }

func (b *LineBuffer) Cursor() int { return b.cursor }

// Room returns how many more bytes fit.
func (b *LineBuffer) Room() int {
	if n := b.capacity - 1 - len(b.data); n > 0 {
		return n
	}
	return 0
}

// Tail returns the content from the cursor to the end.
func (b *LineBuffer) Tail() string { return string(b.data[b.cursor:]) }

// AtEnd reports whether the cursor is after the last byte.
func (b *LineBuffer) AtEnd() bool { return b.cursor == len(b.data) }

// CharAtCursor returns the byte under the cursor, or 0 at end of line.
func (b *LineBuffer) CharAtCursor() byte {
	if b.AtEnd() {
		return 0
	}
	return b.data[b.cursor]
}

// Insert puts c at the cursor and advances it. It reports false when full.
func (b *LineBuffer) Insert(c byte) bool {
	return b.InsertString(string(c))
}

// InsertString inserts s at the cursor only if all of it fits.
func (b *LineBuffer) InsertString(s string) bool {
	if len(s) > b.Room() {
		return false
	}
	b.data = append(b.data[:b.cursor], append([]byte(s), b.data[b.cursor:]...)...)
	b.cursor += len(s)
	return true
}

// Backspace removes the byte left of the cursor.
func (b *LineBuffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	b.data = append(b.data[:b.cursor-1], b.data[b.cursor:]...)
	b.cursor--
	return true
}

// Delete removes the byte under the cursor.
func (b *LineBuffer) Delete() bool {
	if b.AtEnd() {
		return false
	}
	b.data = append(b.data[:b.cursor], b.data[b.cursor+1:]...)
	return true
}

func (b *LineBuffer) Left() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

func (b *LineBuffer) Right() bool {
	if b.AtEnd() {
		return false
	}
	b.cursor++
	return true
}

// Home moves to the start and returns how far the cursor moved.
func (b *LineBuffer) Home() int {
	n := b.cursor
	b.cursor = 0
	return n
}

// End moves to the end and returns how far the cursor moved.
func (b *LineBuffer) End() int {
	n := len(b.data) - b.cursor
	b.cursor = len(b.data)
	return n
}

// Replace swaps the content for s, cut to fit, with the cursor at the end.
func (b *LineBuffer) Replace(s string) {
	if max := b.capacity - 1; len(s) > max {
		s = s[:max]
	}
	b.data = append(b.data[:0], s...)
	b.cursor = len(b.data)
}

// Word returns the text between the last space before the cursor and the
// cursor.
func (b *LineBuffer) Word() string {
	head := string(b.data[:b.cursor])
	return head[strings.LastIndexByte(head, ' ')+1:]
}
