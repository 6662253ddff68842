package domain

import (
	"errors"
	"fmt"
)

// Config mirrors ~/.bareshell/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Prompt              string          `yaml:"prompt"`
	Colors              *bool           `yaml:"colors,omitempty"`
	Limits              Limits          `yaml:"limits"`
	Guard               GuardConfig     `yaml:"guard"`
	Memory              MemoryConfig    `yaml:"memory"`
	Aliases             []AliasSetting  `yaml:"aliases"`
	Logging             LoggingSettings `yaml:"logging"`
}

// Limits bounds every fixed-capacity structure of the session.
type Limits struct {
	HistorySize      int `yaml:"history_size"`
	ErrorLogSize     int `yaml:"error_log_size"`
	MaxAliases       int `yaml:"max_aliases"`
	MaxAliasDepth    int `yaml:"max_alias_depth"`
	MaxBatchCommands int `yaml:"max_batch_commands"`
	MaxCommands      int `yaml:"max_commands"`
	MaxCompletions   int `yaml:"max_completions"`
	InputSize        int `yaml:"input_size"`
	MaxArgs          int `yaml:"max_args"`
	MaxTokenLen      int `yaml:"max_token_len"`
}

// GuardConfig describes the address ranges used by the safety guard.
// MMIOStart and MMIOEnd are both inclusive.
type GuardConfig struct {
	LowThreshold  uint64 `yaml:"low_threshold"`
	MMIOStart     uint64 `yaml:"mmio_start"`
	MMIOEnd       uint64 `yaml:"mmio_end"`
	HighThreshold uint64 `yaml:"high_threshold"`
	WriteBoundary uint64 `yaml:"write_boundary"`
}

// MemoryConfig lays out the simulated machine.
type MemoryConfig struct {
	RAMBase       uint64 `yaml:"ram_base"`
	RAMSize       uint64 `yaml:"ram_size"`
	HeapStart     uint64 `yaml:"heap_start"`
	HeapSize      uint64 `yaml:"heap_size"`
	HeapAlignment uint64 `yaml:"heap_alignment"`
}

// AliasSetting declares a built-in alias.
type AliasSetting struct {
	Name      string `yaml:"name"`
	Expansion string `yaml:"expansion"`
}

// LoggingSettings configures the structured logger.
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ColorsEnabled resolves the optional colors toggle.
func (c Config) ColorsEnabled() bool {
	return c.Colors == nil || *c.Colors
}

var (
	ErrInvalidLimits = errors.New("invalid limits")
	ErrInvalidGuard  = errors.New("invalid guard ranges")
	ErrInvalidMemory = errors.New("invalid memory layout")
)

// Validate checks that the configuration describes a coherent machine.
func (c Config) Validate() error {
	l := c.Limits
	for name, v := range map[string]int{
		"history_size":       l.HistorySize,
		"error_log_size":     l.ErrorLogSize,
		"max_aliases":        l.MaxAliases,
		"max_alias_depth":    l.MaxAliasDepth,
		"max_batch_commands": l.MaxBatchCommands,
		"max_commands":       l.MaxCommands,
		"max_completions":    l.MaxCompletions,
		"input_size":         l.InputSize,
		"max_args":           l.MaxArgs,
		"max_token_len":      l.MaxTokenLen,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidLimits, name)
		}
	}

	g := c.Guard
	if g.LowThreshold == 0 {
		return fmt.Errorf("%w: low_threshold must be non-zero", ErrInvalidGuard)
	}
	if g.MMIOStart > g.MMIOEnd {
		return fmt.Errorf("%w: mmio window is inverted", ErrInvalidGuard)
	}
	if g.HighThreshold <= g.LowThreshold {
		return fmt.Errorf("%w: high_threshold must exceed low_threshold", ErrInvalidGuard)
	}
	if g.WriteBoundary < g.LowThreshold || g.WriteBoundary >= g.HighThreshold {
		return fmt.Errorf("%w: write_boundary outside readable range", ErrInvalidGuard)
	}

	m := c.Memory
	if m.RAMSize == 0 {
		return fmt.Errorf("%w: ram_size must be positive", ErrInvalidMemory)
	}
	if m.HeapAlignment == 0 || m.HeapAlignment&(m.HeapAlignment-1) != 0 {
		return fmt.Errorf("%w: heap_alignment must be a power of two", ErrInvalidMemory)
	}
	if m.HeapStart < m.RAMBase || m.HeapStart+m.HeapSize > m.RAMBase+m.RAMSize {
		return fmt.Errorf("%w: heap must lie inside ram", ErrInvalidMemory)
	}
	return nil
}
