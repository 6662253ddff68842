// Package doctor runs environment diagnostics for bareshell.
package doctor

import (
	"context"
	"fmt"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/ports"
)

// AddressChecker is the subset of the address guard the checks need.
type AddressChecker interface {
	ReadWordSafe(addr uint64) bool
	WriteSafe(addr uint64) bool
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	// NewGuard and NewMemory build throwaway instances from the loaded
	// configuration so checks never touch a live session.
	NewGuard  func(domain.GuardConfig) AddressChecker
	NewMemory func(domain.Config) ports.Memory
	Stats     ports.StatsRecorder
	// Interactive reports whether the standard streams are terminals.
	Interactive func() bool
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	if s.ConfigProvider == nil {
		checks = append(checks, fail("Config file", "config provider unavailable"))
		return domain.HealthReport{Checks: checks}, fmt.Errorf("config provider unavailable")
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	checks = append(checks, s.guardCheck(cfg.Guard))
	checks = append(checks, s.memoryCheck(cfg))
	checks = append(checks, s.statsCheck(ctx))
	checks = append(checks, s.terminalCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) guardCheck(g domain.GuardConfig) domain.HealthCheck {
	if s.NewGuard == nil {
		return warn("Address guard", "guard factory not configured")
	}
	guard := s.NewGuard(g)
	switch {
	case guard.ReadWordSafe(0):
		return fail("Address guard", "address 0 is considered readable")
	case guard.ReadWordSafe(g.MMIOStart &^ 3):
		return fail("Address guard", fmt.Sprintf("console window 0x%x is readable", g.MMIOStart))
	case g.WriteBoundary <= g.LowThreshold:
		return fail("Address guard", "write boundary does not protect the low region")
	case !guard.WriteSafe(g.WriteBoundary &^ 3):
		return warn("Address guard", fmt.Sprintf("write boundary 0x%x is not writable", g.WriteBoundary))
	}
	return ok("Address guard", fmt.Sprintf("readable 0x%x-0x%x, writable from 0x%x", g.LowThreshold, g.HighThreshold-1, g.WriteBoundary))
}

func (s *Service) memoryCheck(cfg domain.Config) domain.HealthCheck {
	m := cfg.Memory
	if m.HeapStart < m.RAMBase || m.HeapStart+m.HeapSize > m.RAMBase+m.RAMSize {
		return fail("Memory map", "heap lies outside RAM")
	}
	if s.NewMemory == nil {
		return warn("Memory map", "memory factory not configured")
	}
	mem := s.NewMemory(cfg)
	regions := []struct {
		name string
		addr uint64
	}{
		{"heap start", m.HeapStart},
		{"heap end", m.HeapStart + m.HeapSize - 1},
		{"console window", cfg.Guard.MMIOStart},
	}
	for _, r := range regions {
		if !mem.Mapped(r.addr) {
			return fail("Memory map", fmt.Sprintf("%s 0x%x is not mapped", r.name, r.addr))
		}
	}
	word, err := mem.Read(m.RAMBase, domain.WidthWord)
	if err != nil {
		return fail("Memory map", fmt.Sprintf("kernel image unreadable: %v", err))
	}
	if word == 0 {
		return warn("Memory map", "kernel image header is empty")
	}
	return ok("Memory map", fmt.Sprintf("RAM at 0x%x, heap at 0x%x, header word 0x%08x", m.RAMBase, m.HeapStart, word))
}

func (s *Service) statsCheck(ctx context.Context) domain.HealthCheck {
	if s.Stats == nil {
		return warn("Statistics store", "store not initialized")
	}
	if err := s.Stats.Record(ctx, "doctor", 0, domain.KindSuccess); err != nil {
		return fail("Statistics store", err.Error())
	}
	summary, err := s.Stats.Summary(ctx)
	if err != nil {
		return fail("Statistics store", err.Error())
	}
	for _, c := range summary.Commands {
		if c.Name == "doctor" {
			return ok("Statistics store", "in-memory round trip succeeded")
		}
	}
	return fail("Statistics store", "recorded entry missing from summary")
}

func (s *Service) terminalCheck() domain.HealthCheck {
	if s.Interactive == nil {
		return warn("Terminal", "detection unavailable")
	}
	if !s.Interactive() {
		return warn("Terminal", "stdin/stdout are not terminals; line editing keys and colors are limited")
	}
	return ok("Terminal", "interactive terminal detected")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
