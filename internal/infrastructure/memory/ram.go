// Package memory simulates the physical address space of the machine the
// shell drives: a RAM window whose first page carries the kernel image
// header, and a console register window that is mapped but holds no data.
package memory

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/ports"
)

var (
	// ErrUnmapped is returned for addresses outside every window.
	ErrUnmapped = errors.New("address not mapped")
	// ErrWidth is returned for access widths other than 1, 2 or 4.
	ErrWidth = errors.New("unsupported access width")
)

// KernelSignature is written at the start of RAM.
const KernelSignature = "BARESHELL KERNEL IMAGE"

// RAM is a little-endian byte array mapped at a base address. The console
// window reads as zero and discards writes.
type RAM struct {
	base      uint64
	data      []byte
	mmioStart uint64
	mmioEnd   uint64
}

// NewRAM maps size bytes at base and seeds the kernel header.
func NewRAM(mem domain.MemoryConfig, guard domain.GuardConfig) *RAM {
	r := &RAM{
		base:      mem.RAMBase,
		data:      make([]byte, mem.RAMSize),
		mmioStart: guard.MMIOStart,
		mmioEnd:   guard.MMIOEnd,
	}
	copy(r.data, KernelSignature)
	return r
}

// Mapped reports whether addr belongs to RAM or the console window.
func (r *RAM) Mapped(addr uint64) bool {
	return r.inRAM(addr, 1) || r.inMMIO(addr)
}

func (r *RAM) Read(addr uint64, width int) (uint64, error) {
	if err := checkWidth(width); err != nil {
		return 0, err
	}
	if r.inMMIO(addr) {
		return 0, nil
	}
	if !r.inRAM(addr, width) {
		return 0, fmt.Errorf("read 0x%x: %w", addr, ErrUnmapped)
	}
	off := addr - r.base
	switch width {
	case domain.WidthByte:
		return uint64(r.data[off]), nil
	case domain.WidthHalf:
		return uint64(binary.LittleEndian.Uint16(r.data[off:])), nil
	default:
		return uint64(binary.LittleEndian.Uint32(r.data[off:])), nil
	}
}

func (r *RAM) Write(addr uint64, width int, value uint64) error {
	if err := checkWidth(width); err != nil {
		return err
	}
	if r.inMMIO(addr) {
		return nil
	}
	if !r.inRAM(addr, width) {
		return fmt.Errorf("write 0x%x: %w", addr, ErrUnmapped)
	}
	off := addr - r.base
	switch width {
	case domain.WidthByte:
		r.data[off] = byte(value)
	case domain.WidthHalf:
		binary.LittleEndian.PutUint16(r.data[off:], uint16(value))
	default:
		binary.LittleEndian.PutUint32(r.data[off:], uint32(value))
	}
	return nil
}

// WriteBytes copies p into RAM at addr.
func (r *RAM) WriteBytes(addr uint64, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if !r.inRAM(addr, len(p)) {
		return fmt.Errorf("write 0x%x+%d: %w", addr, len(p), ErrUnmapped)
	}
	copy(r.data[addr-r.base:], p)
	return nil
}

func (r *RAM) inRAM(addr uint64, width int) bool {
	if addr < r.base {
		return false
	}
	off := addr - r.base
	return off < uint64(len(r.data)) && uint64(len(r.data))-off >= uint64(width)
}

func (r *RAM) inMMIO(addr uint64) bool {
	return addr >= r.mmioStart && addr <= r.mmioEnd
}

func checkWidth(width int) error {
	switch width {
	case domain.WidthByte, domain.WidthHalf, domain.WidthWord:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrWidth, width)
}

var _ ports.Memory = (*RAM)(nil)
