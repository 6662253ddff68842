package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/doeshing/bareshell/internal/application/doctor"
	"github.com/doeshing/bareshell/internal/application/editor"
	"github.com/doeshing/bareshell/internal/application/shell"
	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/infrastructure/commands"
	"github.com/doeshing/bareshell/internal/infrastructure/config"
	"github.com/doeshing/bareshell/internal/infrastructure/console"
	"github.com/doeshing/bareshell/internal/infrastructure/memory"
	"github.com/doeshing/bareshell/internal/infrastructure/security"
	"github.com/doeshing/bareshell/internal/infrastructure/stats"
	"github.com/doeshing/bareshell/internal/pkg/ansi"
	"github.com/doeshing/bareshell/internal/pkg/logger"
	"github.com/doeshing/bareshell/internal/ports"
)

// Options selects the streams and overrides used to build a Container.
type Options struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool
	// In and Out default to the process's standard streams.
	In  io.Reader
	Out io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Logger        *logger.ZapLogger
	Console       *console.Terminal
	Session       *shell.Session
	Editor        *editor.Editor
	Memory        *memory.RAM
	Heap          *memory.Heap
	Guard         *security.AddressGuard
	Stats         *stats.SQLiteStore
	DoctorService *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	term := console.NewStdio()
	interactive := opts.In == nil && opts.Out == nil && console.IsInteractive()
	if opts.In != nil || opts.Out != nil {
		term = console.New(orReader(opts.In), orWriter(opts.Out))
	}

	sessionID := uuid.NewString()
	zl, err := logger.New(logger.Options{
		Verbose: opts.Verbose,
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Quiet:   interactive,
	})
	if err != nil {
		return nil, err
	}
	log := zl.With(map[string]interface{}{"session": sessionID})
	// abort records why the build stopped and flushes the logger, which
	// no Container will be around to close.
	abort := func(stage string, err error) (*Container, error) {
		log.Error("container build failed", err, map[string]interface{}{"stage": stage})
		_ = zl.Sync()
		return nil, err
	}

	store, err := stats.NewSQLiteStore(ctx)
	if err != nil {
		return abort("stats", fmt.Errorf("open statistics store: %w", err))
	}

	colors := cfg.ColorsEnabled() && !opts.NoColor
	if opts.Out != nil {
		colors = colors && console.IsTerminalWriter(opts.Out)
	} else {
		colors = colors && interactive
	}

	session, err := shell.NewSession(shell.Options{
		ID:      sessionID,
		Prompt:  cfg.Prompt,
		Limits:  cfg.Limits,
		Printer: ansi.NewPrinter(term, colors),
		Stats:   store,
		Logger:  log,
	})
	if err != nil {
		store.Close()
		return abort("session", err)
	}

	ram := memory.NewRAM(cfg.Memory, cfg.Guard)
	heap := memory.NewHeap(ram, cfg.Memory)
	guard := security.NewAddressGuard(cfg.Guard)

	err = commands.Register(commands.Deps{
		Session: session,
		Memory:  ram,
		Heap:    heap,
		Guard:   guard,
		Config:  cfg,
	})
	if err == nil {
		err = session.InstallAliases(cfg.Aliases)
	}
	if err != nil {
		store.Close()
		return abort("commands", err)
	}

	ed := editor.New(term, session.History(), session.Completer(), session.Prompt)
	session.AttachReader(ed)

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		NewGuard: func(g domain.GuardConfig) doctor.AddressChecker {
			return security.NewAddressGuard(g)
		},
		NewMemory: func(c domain.Config) ports.Memory {
			return memory.NewRAM(c.Memory, c.Guard)
		},
		Stats:       store,
		Interactive: console.IsInteractive,
	}

	log.Debug("container built", map[string]interface{}{
		"config":   cfgLoader.Path(),
		"commands": len(session.Registry().Commands()),
		"colors":   colors,
	})

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		Logger:        log,
		Console:       term,
		Session:       session,
		Editor:        ed,
		Memory:        ram,
		Heap:          heap,
		Guard:         guard,
		Stats:         store,
		DoctorService: doctorService,
	}, nil
}

// Close restores the terminal and releases the statistics store.
func (c *Container) Close() error {
	var errs []error
	if c.Console != nil {
		errs = append(errs, c.Console.Restore())
	}
	if c.Stats != nil {
		errs = append(errs, c.Stats.Close())
	}
	if c.Logger != nil {
		// Syncing stderr fails on some platforms; the error is not useful.
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}

func orReader(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}
	return r
}

func orWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
