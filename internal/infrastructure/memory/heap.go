package memory

import (
	"errors"
	"fmt"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/ports"
)

// ErrHeapExhausted is returned when a request does not fit in the heap.
var ErrHeapExhausted = errors.New("heap exhausted")

// Heap is a linear bump allocator carved out of RAM. Nothing is freed.
type Heap struct {
	ram         *RAM
	start       uint64
	end         uint64
	align       uint64
	current     uint64
	total       uint64
	allocations uint64
}

// NewHeap places the heap described by cfg inside ram.
func NewHeap(ram *RAM, cfg domain.MemoryConfig) *Heap {
	return &Heap{
		ram:     ram,
		start:   cfg.HeapStart,
		end:     cfg.HeapStart + cfg.HeapSize,
		align:   cfg.HeapAlignment,
		current: cfg.HeapStart,
	}
}

// Allocate reserves size bytes and returns their aligned address.
func (h *Heap) Allocate(size uint64) (uint64, error) {
	if size == 0 {
		return 0, fmt.Errorf("allocate: size must be positive")
	}
	addr := alignUp(h.current, h.align)
	if addr < h.current || addr > h.end || h.end-addr < size {
		return 0, fmt.Errorf("allocate %d bytes: %w", size, ErrHeapExhausted)
	}
	h.current = addr + size
	h.total += size
	h.allocations++
	return addr, nil
}

// Dup copies text into the heap with a trailing NUL.
func (h *Heap) Dup(text string) (uint64, error) {
	buf := append([]byte(text), 0)
	addr, err := h.Allocate(uint64(len(buf)))
	if err != nil {
		return 0, err
	}
	if err := h.ram.WriteBytes(addr, buf); err != nil {
		return 0, fmt.Errorf("dup: %w", err)
	}
	return addr, nil
}

func (h *Heap) Stats() domain.HeapStats {
	return domain.HeapStats{
		Start:          h.start,
		End:            h.end,
		Current:        h.current,
		TotalAllocated: h.total,
		Allocations:    h.allocations,
		Remaining:      h.end - h.current,
	}
}

func alignUp(v, align uint64) uint64 {
	if align <= 1 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

var _ ports.Allocator = (*Heap)(nil)
