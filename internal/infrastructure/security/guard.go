package security

import (
	"fmt"

	"github.com/doeshing/bareshell/internal/domain"
)

// Access names the kind of memory access being checked.
type Access int

const (
	AccessReadByte Access = iota
	AccessReadWord
	AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessReadByte:
		return "read-byte"
	case AccessReadWord:
		return "read-word"
	case AccessWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Assessment is the outcome of evaluating one address.
type Assessment struct {
	Safe    bool
	Reasons []string
}

// AddressGuard classifies addresses for the diagnostic memory commands.
// It holds no state besides its configuration.
type AddressGuard struct {
	cfg   domain.GuardConfig
	rules []addressRule
}

type addressRule struct {
	name    string
	applies func(Access) bool
	reject  func(cfg domain.GuardConfig, addr uint64) bool
}

// NewAddressGuard builds a guard over cfg.
func NewAddressGuard(cfg domain.GuardConfig) *AddressGuard {
	return &AddressGuard{cfg: cfg, rules: defaultRules()}
}

// Config returns the ranges the guard was built with.
func (g *AddressGuard) Config() domain.GuardConfig {
	return g.cfg
}

// Evaluate applies every rule relevant to access and collects the reasons
// the address is rejected.
func (g *AddressGuard) Evaluate(addr uint64, access Access) Assessment {
	assessment := Assessment{Safe: true}
	for _, rule := range g.rules {
		if !rule.applies(access) {
			continue
		}
		if rule.reject(g.cfg, addr) {
			assessment.Safe = false
			assessment.Reasons = append(assessment.Reasons, rule.name)
		}
	}
	return assessment
}

// ReadWordSafe reports whether a 4-byte read at addr is allowed.
func (g *AddressGuard) ReadWordSafe(addr uint64) bool {
	return g.Evaluate(addr, AccessReadWord).Safe
}

// ReadByteSafe reports whether a byte read at addr is allowed.
func (g *AddressGuard) ReadByteSafe(addr uint64) bool {
	return g.Evaluate(addr, AccessReadByte).Safe
}

// WriteSafe reports whether addr passes ReadWordSafe and lies at or above
// the write boundary.
func (g *AddressGuard) WriteSafe(addr uint64) bool {
	return g.Evaluate(addr, AccessWrite).Safe
}

// CheckWrite validates a write of width bytes. Alignment is checked first,
// then the guard, then the value range.
func (g *AddressGuard) CheckWrite(addr uint64, width int, value uint64) error {
	switch width {
	case domain.WidthByte, domain.WidthHalf, domain.WidthWord:
	default:
		return domain.NewError(domain.KindInvalidArgs, fmt.Sprintf("unsupported write width %d", width))
	}
	if addr%uint64(width) != 0 {
		return domain.NewError(domain.KindAlignment,
			fmt.Sprintf("address 0x%x not aligned for %d-bit write", addr, width*8))
	}
	if !g.WriteSafe(addr) {
		return domain.NewError(domain.KindPermission, fmt.Sprintf("unsafe write address 0x%x", addr))
	}
	if limit := maxValue(width); value > limit {
		return domain.NewError(domain.KindRange,
			fmt.Sprintf("value 0x%x too large for %d-bit write (max 0x%x)", value, width*8, limit))
	}
	return nil
}

// CheckRange validates that both ends of [start, start+length) are byte-safe.
func (g *AddressGuard) CheckRange(start, length uint64) error {
	if length == 0 {
		return domain.NewError(domain.KindInvalidArgs, "length must be positive")
	}
	if !g.ReadByteSafe(start) {
		return domain.NewError(domain.KindPermission, fmt.Sprintf("unsafe start address 0x%x", start))
	}
	end := start + length - 1
	if end < start || !g.ReadByteSafe(end) {
		return domain.NewError(domain.KindPermission, fmt.Sprintf("range extends to unsafe address 0x%x", end))
	}
	return nil
}

func maxValue(width int) uint64 {
	switch width {
	case domain.WidthByte:
		return 0xFF
	case domain.WidthHalf:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}

func anyAccess(Access) bool { return true }

func wordAccess(a Access) bool { return a == AccessReadWord || a == AccessWrite }

func writeAccess(a Access) bool { return a == AccessWrite }

func defaultRules() []addressRule {
	return []addressRule{
		{
			name:    "null address",
			applies: anyAccess,
			reject:  func(_ domain.GuardConfig, addr uint64) bool { return addr == 0 },
		},
		{
			name:    "below low threshold",
			applies: anyAccess,
			reject:  func(cfg domain.GuardConfig, addr uint64) bool { return addr < cfg.LowThreshold },
		},
		{
			name:    "console register window",
			applies: anyAccess,
			reject: func(cfg domain.GuardConfig, addr uint64) bool {
				return addr >= cfg.MMIOStart && addr <= cfg.MMIOEnd
			},
		},
		{
			name:    "at or above high threshold",
			applies: anyAccess,
			reject:  func(cfg domain.GuardConfig, addr uint64) bool { return addr >= cfg.HighThreshold },
		},
		{
			name:    "not word aligned",
			applies: wordAccess,
			reject:  func(_ domain.GuardConfig, addr uint64) bool { return addr%4 != 0 },
		},
		{
			name:    "resident code image",
			applies: writeAccess,
			reject:  func(cfg domain.GuardConfig, addr uint64) bool { return addr < cfg.WriteBoundary },
		},
	}
}
