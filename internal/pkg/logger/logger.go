package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/doeshing/bareshell/internal/ports"
)

// Options controls how the zap logger is built.
type Options struct {
	Verbose bool
	// Level is one of debug, info, warn, error. Verbose forces debug.
	Level string
	// File receives log output. Empty means stderr.
	File string
	// Quiet raises the floor to warn when logging to stderr, so that log
	// lines do not interleave with a raw-mode console.
	Quiet bool
}

// ZapLogger adapts zap to the ports.Logger interface.
type ZapLogger struct {
	z *zap.Logger
}

// New builds a production zap logger from opts.
func New(opts Options) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Quiet && opts.File == "" && level < zapcore.WarnLevel {
		level = zapcore.WarnLevel
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" {
		config.OutputPaths = []string{opts.File}
		config.ErrorOutputPaths = []string{opts.File}
	} else {
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
	}

	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &ZapLogger{z: z}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{z: zap.NewNop()}
}

// With returns a child logger that always carries fields.
func (l *ZapLogger) With(fields map[string]interface{}) *ZapLogger {
	return &ZapLogger{z: l.z.With(toFields(fields)...)}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, toFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, toFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, toFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.z.Error(msg, append(toFields(fields), zap.Error(err))...)
}

func parseLevel(value string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", value)
	}
}

// toFields converts a field map in a stable key order.
func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

var _ ports.Logger = (*ZapLogger)(nil)
