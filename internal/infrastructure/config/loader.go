package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/bareshell/assets"
	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/pkg/filesystem"
	"github.com/doeshing/bareshell/internal/ports"
)

// EnvConfigPath overrides the default config location.
const EnvConfigPath = "BARESHELL_CONFIG"

// FileLoader loads YAML configuration from ~/.bareshell/config.yaml
// (overridable via BARESHELL_CONFIG). The file is only read, never written.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. A non-empty path must exist.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. Keys missing from the file keep
// their embedded default values.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return domain.Config{}, err
	}

	path, explicit := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := decode(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg = hydrateDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	path, _ := l.resolvePath()
	return path
}

func (l *FileLoader) resolvePath() (path string, explicit bool) {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath), true
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandHome(custom), true
	}
	return filepath.Join(filesystem.UserHomeDir(), ".bareshell", "config.yaml"), false
}

// Defaults returns the embedded default configuration.
func Defaults() (domain.Config, error) {
	var cfg domain.Config
	if err := decode(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg domain.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, cfg *domain.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Prompt == "" {
		cfg.Prompt = domain.DefaultPrompt
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	l := &cfg.Limits
	defaultInt(&l.HistorySize, domain.DefaultHistorySize)
	defaultInt(&l.ErrorLogSize, domain.DefaultErrorLogSize)
	defaultInt(&l.MaxAliases, domain.DefaultMaxAliases)
	defaultInt(&l.MaxAliasDepth, domain.DefaultMaxAliasDepth)
	defaultInt(&l.MaxBatchCommands, domain.DefaultMaxBatchCommands)
	defaultInt(&l.MaxCommands, domain.DefaultMaxCommands)
	defaultInt(&l.MaxCompletions, domain.DefaultMaxCompletions)
	defaultInt(&l.InputSize, domain.DefaultInputSize)
	defaultInt(&l.MaxArgs, domain.DefaultMaxArgs)
	defaultInt(&l.MaxTokenLen, domain.DefaultMaxTokenLen)
	if cfg.Memory.HeapAlignment == 0 {
		cfg.Memory.HeapAlignment = domain.DefaultHeapAlignment
	}
	return cfg
}

func defaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
