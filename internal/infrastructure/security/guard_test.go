package security

import (
	"testing"

	"github.com/doeshing/bareshell/internal/domain"
)

func defaultGuard() *AddressGuard {
	return NewAddressGuard(domain.GuardConfig{
		LowThreshold:  domain.DefaultLowThreshold,
		MMIOStart:     domain.DefaultMMIOStart,
		MMIOEnd:       domain.DefaultMMIOEnd,
		HighThreshold: domain.DefaultHighThreshold,
		WriteBoundary: domain.DefaultWriteBoundary,
	})
}

func TestReadWordSafe(t *testing.T) {
	guard := defaultGuard()
	tests := []struct {
		addr uint64
		want bool
	}{
		{0x0, false},
		{0xFFC, false},
		{0x1000, true},
		{0x1002, false},
		{0x08FFFFFC, true},
		{0x09000000, false},
		{0x09000800, false},
		{0x09001000, false},
		{0x09001004, true},
		{0x40000000, true},
		{0xFFFEFFFC, true},
		{0xFFFF0000, false},
	}
	for _, tt := range tests {
		if got := guard.ReadWordSafe(tt.addr); got != tt.want {
			t.Fatalf("ReadWordSafe(0x%x) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestReadByteSafeIgnoresAlignment(t *testing.T) {
	guard := defaultGuard()
	if !guard.ReadByteSafe(0x40000003) {
		t.Fatal("unaligned byte read in RAM should be safe")
	}
	if guard.ReadByteSafe(0x09000001) {
		t.Fatal("byte read inside the console window should be unsafe")
	}
	if guard.ReadByteSafe(0xFFF) {
		t.Fatal("byte read below the low threshold should be unsafe")
	}
}

func TestWriteSafe(t *testing.T) {
	guard := defaultGuard()
	tests := []struct {
		addr uint64
		want bool
	}{
		{0x40000000, false},
		{0x4000FFFC, false},
		{0x40010000, true},
		{0x40010002, false},
		{0x40100000, true},
		{0x09001000, false},
	}
	for _, tt := range tests {
		if got := guard.WriteSafe(tt.addr); got != tt.want {
			t.Fatalf("WriteSafe(0x%x) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestCheckWriteOrder(t *testing.T) {
	guard := defaultGuard()
	tests := []struct {
		name  string
		addr  uint64
		width int
		value uint64
		want  domain.ErrorKind
	}{
		{"ok word", 0x40100000, domain.WidthWord, 0xDEADBEEF, domain.KindSuccess},
		{"ok byte", 0x40100004, domain.WidthByte, 0xFF, domain.KindSuccess},
		{"unaligned byte needs word-safe address", 0x40100001, domain.WidthByte, 0xFF, domain.KindPermission},
		{"half on odd word boundary", 0x40100002, domain.WidthHalf, 1, domain.KindPermission},
		{"odd half", 0x40100001, domain.WidthHalf, 1, domain.KindAlignment},
		{"misaligned word wins over unsafe", 0x40000002, domain.WidthWord, 1, domain.KindAlignment},
		{"below write boundary", 0x40000000, domain.WidthWord, 1, domain.KindPermission},
		{"unsafe wins over range", 0x40000000, domain.WidthByte, 0x1FF, domain.KindPermission},
		{"byte range", 0x40100000, domain.WidthByte, 0x100, domain.KindRange},
		{"half range", 0x40100000, domain.WidthHalf, 0x10000, domain.KindRange},
		{"bad width", 0x40100000, 3, 1, domain.KindInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.CheckWrite(tt.addr, tt.width, tt.value)
			if got := domain.KindOf(err); got != tt.want {
				t.Fatalf("CheckWrite kind = %v, want %v (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestCheckRange(t *testing.T) {
	guard := defaultGuard()
	if err := guard.CheckRange(0x40000000, 64); err != nil {
		t.Fatalf("CheckRange error: %v", err)
	}
	if err := guard.CheckRange(0x08FFFFF0, 32); domain.KindOf(err) != domain.KindPermission {
		t.Fatalf("range ending in the console window should be refused, got %v", err)
	}
	if err := guard.CheckRange(0x40000000, 0); domain.KindOf(err) != domain.KindInvalidArgs {
		t.Fatalf("zero length should be invalid, got %v", err)
	}
}

func TestEvaluateCollectsReasons(t *testing.T) {
	guard := defaultGuard()
	got := guard.Evaluate(0x09000002, AccessWrite)
	if got.Safe {
		t.Fatal("expected unsafe assessment")
	}
	if len(got.Reasons) < 2 {
		t.Fatalf("expected several reasons, got %v", got.Reasons)
	}
}
