// Package ring implements a fixed-capacity circular buffer that overwrites
// its oldest element once full.
package ring

// Buffer is a circular store of at most Cap() elements. The zero value is
// not usable; call New.
type Buffer[T any] struct {
	items []T
	next  int
	count int
}

// New returns an empty buffer. A non-positive capacity is treated as 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest element when the buffer is full.
// It reports whether an element was evicted.
func (b *Buffer[T]) Push(v T) bool {
	evicted := b.count == len(b.items)
	b.items[b.next] = v
	b.next = (b.next + 1) % len(b.items)
	if !evicted {
		b.count++
	}
	return evicted
}

// Len returns the number of retained elements.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// Full reports whether the next Push evicts.
func (b *Buffer[T]) Full() bool {
	return b.count == len(b.items)
}

// At returns the i-th retained element, 0 being the oldest.
func (b *Buffer[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= b.count {
		return zero, false
	}
	return b.items[b.index(i)], true
}

// Last returns the newest element.
func (b *Buffer[T]) Last() (T, bool) {
	return b.At(b.count - 1)
}

// Items returns the retained elements from oldest to newest.
func (b *Buffer[T]) Items() []T {
	out := make([]T, 0, b.count)
	for i := 0; i < b.count; i++ {
		out = append(out, b.items[b.index(i)])
	}
	return out
}

// Clear drops every element without changing the capacity.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.next = 0
	b.count = 0
}

func (b *Buffer[T]) index(i int) int {
	start := b.next - b.count
	if start < 0 {
		start += len(b.items)
	}
	return (start + i) % len(b.items)
}
