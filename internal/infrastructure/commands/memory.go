package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/infrastructure/security"
)

// maxDumpLength bounds a single dump.
const maxDumpLength = 1024

func (h *handlers) meminfo(args []string) domain.ErrorKind {
	if len(args) > 1 {
		return h.usage("meminfo", "takes no arguments")
	}
	h.printHeap()
	return domain.KindSuccess
}

func (h *handlers) printHeap() {
	p := h.p()
	s := h.Heap.Stats()
	p.Header("Memory Information")
	p.Printf("Heap start:      0x%08x\n", s.Start)
	p.Printf("Heap end:        0x%08x\n", s.End)
	p.Printf("Current pointer: 0x%08x\n", s.Current)
	p.Printf("Total allocated: %s (%s bytes)\n", humanize.IBytes(s.TotalAllocated), humanize.Comma(int64(s.TotalAllocated)))
	p.Printf("Allocations:     %s\n", humanize.Comma(int64(s.Allocations)))
	p.Printf("Bytes remaining: %s (%s bytes)\n", humanize.IBytes(s.Remaining), humanize.Comma(int64(s.Remaining)))
}

func (h *handlers) peek(args []string) domain.ErrorKind {
	if len(args) != 2 {
		return h.usage("peek", "expected an address")
	}
	addr, err := parseNumber(args[1])
	if err != nil {
		h.p().Println("Address should be hex (0x1000) or decimal (4096)")
		return h.Session.FailWith("peek", err)
	}
	if !h.Guard.ReadWordSafe(addr) {
		reasons := h.Guard.Evaluate(addr, security.AccessReadWord).Reasons
		return h.Session.Fail(domain.KindPermission, "peek",
			fmt.Sprintf("unsafe address 0x%x: %s", addr, strings.Join(reasons, ", ")))
	}
	value, err := h.Memory.Read(addr, domain.WidthWord)
	if err != nil {
		return h.Session.Fail(domain.KindMemory, "peek", fmt.Sprintf("address 0x%x not mapped", addr))
	}
	h.p().Printf("Address 0x%08x: 0x%08x\n", addr, value)
	return domain.KindSuccess
}

func (h *handlers) poke(args []string) domain.ErrorKind {
	if len(args) < 3 || len(args) > 4 {
		return h.usage("poke", "expected address and value")
	}
	p := h.p()
	addr, err := parseNumber(args[1])
	if err != nil {
		return h.Session.FailWith("poke", err)
	}
	value, err := parseNumber(args[2])
	if err != nil {
		return h.Session.FailWith("poke", err)
	}
	width := domain.WidthWord
	if len(args) == 4 {
		w, ok := parseWidth(args[3])
		if !ok {
			p.Println("Valid sizes: byte, word, long")
			return h.Session.Fail(domain.KindInvalidArgs, "poke", "invalid size '"+args[3]+"'")
		}
		width = w
	}
	if err := h.Guard.CheckWrite(addr, width, value); err != nil {
		return h.Session.FailWith("poke", err)
	}

	p.Println("Writing to memory...")
	if err := h.Memory.Write(addr, width, value); err != nil {
		return h.Session.Fail(domain.KindMemory, "poke", fmt.Sprintf("address 0x%x not mapped", addr))
	}
	p.Println("Verifying write...")
	readBack, err := h.Memory.Read(addr, width)
	if err != nil || readBack != value {
		p.Printf("Expected: 0x%x\n", value)
		p.Printf("Read back: 0x%x\n", readBack)
		return h.Session.Fail(domain.KindMemory, "poke", "write verification failed")
	}
	p.Success("Write successful!")
	p.Printf("Address: 0x%08x\n", addr)
	p.Printf("Value written: 0x%x\n", value)
	p.Printf("Size: %d bytes\n", width)
	return domain.KindSuccess
}

func (h *handlers) dump(args []string) domain.ErrorKind {
	if len(args) != 3 {
		return h.usage("dump", "expected address and length")
	}
	start, err := parseNumber(args[1])
	if err != nil {
		return h.Session.FailWith("dump", err)
	}
	length, err := parseNumber(args[2])
	if err != nil {
		return h.Session.FailWith("dump", err)
	}
	if length == 0 {
		return h.Session.Fail(domain.KindInvalidArgs, "dump", "length must be positive")
	}
	if length > maxDumpLength {
		return h.Session.Fail(domain.KindRange, "dump", fmt.Sprintf("length %d too large (max %d)", length, maxDumpLength))
	}
	if err := h.Guard.CheckRange(start, length); err != nil {
		return h.Session.FailWith("dump", err)
	}

	p := h.p()
	p.Println("Memory dump:")
	p.Println()
	end := start + length
	for row := start &^ 0xF; row < end; row += 16 {
		var hex, text strings.Builder
		for i := uint64(0); i < 16; i++ {
			addr := row + i
			if addr < start || addr >= end {
				hex.WriteString("   ")
				text.WriteByte(' ')
			} else if b, ok := h.readByte(addr); ok {
				fmt.Fprintf(&hex, "%02x ", b)
				text.WriteByte(printable(b))
			} else {
				hex.WriteString("?? ")
				text.WriteByte('?')
			}
			if i == 7 {
				hex.WriteByte(' ')
			}
		}
		p.Printf("%08x: %s |%s|\n", row, hex.String(), text.String())
	}
	p.Println()
	p.Printf("Dumped %d bytes from 0x%08x\n", length, start)
	return domain.KindSuccess
}

// readByte returns the byte at addr when the guard allows it and the
// address is mapped.
func (h *handlers) readByte(addr uint64) (byte, bool) {
	if !h.Guard.ReadByteSafe(addr) {
		return 0, false
	}
	v, err := h.Memory.Read(addr, domain.WidthByte)
	if err != nil {
		return 0, false
	}
	return byte(v), true
}

func (h *handlers) alloc(args []string) domain.ErrorKind {
	p := h.p()
	if len(args) >= 3 && args[1] == "-s" {
		text := strings.Join(args[2:], " ")
		addr, err := h.Heap.Dup(text)
		if err != nil {
			return h.Session.Fail(domain.KindMemory, "alloc", err.Error())
		}
		p.Printf("Copied %d bytes to 0x%08x\n", len(text)+1, addr)
		return domain.KindSuccess
	}
	if len(args) != 2 {
		return h.usage("alloc", "expected a size")
	}
	size, err := parseNumber(args[1])
	if err != nil {
		return h.Session.FailWith("alloc", err)
	}
	if size == 0 {
		return h.Session.Fail(domain.KindInvalidArgs, "alloc", "size must be positive")
	}
	addr, err := h.Heap.Allocate(size)
	if err != nil {
		return h.Session.Fail(domain.KindMemory, "alloc", err.Error())
	}
	p.Printf("Allocated %s at 0x%08x\n", humanize.IBytes(size), addr)
	return domain.KindSuccess
}
