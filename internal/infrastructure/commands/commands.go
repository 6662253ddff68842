// Package commands provides the concrete handlers registered with a shell
// session: text, screen and diagnostic commands, the memory inspection
// commands guarded by the address guard, and the session introspection
// commands.
package commands

import (
	"errors"
	"fmt"

	"github.com/doeshing/bareshell/internal/application/shell"
	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/infrastructure/security"
	"github.com/doeshing/bareshell/internal/pkg/ansi"
	"github.com/doeshing/bareshell/internal/ports"
)

// Deps are the collaborators handlers need.
type Deps struct {
	Session *shell.Session
	Memory  ports.Memory
	Heap    ports.Allocator
	Guard   *security.AddressGuard
	Config  domain.Config
}

type handlers struct {
	Deps
}

func (h *handlers) p() *ansi.Printer { return h.Session.Printer() }

// Register installs every command on deps.Session in help order.
func Register(deps Deps) error {
	if deps.Session == nil || deps.Memory == nil || deps.Heap == nil || deps.Guard == nil {
		return errors.New("commands: session, memory, heap and guard are required")
	}
	h := &handlers{Deps: deps}
	for _, cmd := range h.catalog() {
		if err := deps.Session.Registry().Register(cmd); err != nil {
			return fmt.Errorf("commands: %w", err)
		}
	}
	return nil
}

func (h *handlers) catalog() []domain.Command {
	return []domain.Command{
		{
			Name:        "help",
			Description: "Show available commands",
			Usage:       []string{"help [command]", "help        - Show all commands", "help echo   - Show help for echo"},
			Handler:     h.help,
		},
		{
			Name:        "echo",
			Description: "Print text to console",
			Usage:       []string{"echo <text>", "echo Hello World"},
			Handler:     h.echo,
		},
		{
			Name:        "clear",
			Description: "Clear screen or part of the line",
			Usage:       []string{"clear [screen|line|eol|bol]", "clear      - Clear entire screen", "clear eol  - Clear to end of line"},
			Handler:     h.clear,
		},
		{
			Name:        "meminfo",
			Description: "Display heap statistics",
			Usage:       []string{"meminfo"},
			Handler:     h.meminfo,
		},
		{
			Name:        "about",
			Description: "Show system information",
			Usage:       []string{"about"},
			Handler:     h.about,
		},
		{
			Name:        "uptime",
			Description: "Show session uptime",
			Usage:       []string{"uptime"},
			Handler:     h.uptime,
		},
		{
			Name:        "calc",
			Description: "Simple calculator",
			Usage:       []string{"calc <number1> <operator> <number2>", "calc 10 + 5", "calc 15 / 3"},
			Handler:     h.calc,
		},
		{
			Name:        "peek",
			Description: "Read 32-bit value from memory",
			Usage:       []string{"peek <address>", "peek 0x40000000", "peek 1073741824"},
			Handler:     h.peek,
		},
		{
			Name:        "poke",
			Description: "Write value to memory",
			Usage:       []string{"poke <address> <value> [byte|word|long]", "poke 0x40100000 0x12345678", "poke 0x40100000 255 byte"},
			Handler:     h.poke,
		},
		{
			Name:        "dump",
			Description: "Hex dump of a memory range",
			Usage:       []string{"dump <address> <length>", "dump 0x40000000 64"},
			Handler:     h.dump,
		},
		{
			Name:        "color",
			Description: "Control colored output",
			Usage:       []string{"color [on|off|enable|disable|test]"},
			Handler:     h.color,
		},
		{
			Name:        "reboot",
			Description: "Restart the shell session",
			Usage:       []string{"reboot"},
			Handler:     h.reboot,
		},
		{
			Name:        "sysinfo",
			Description: "Detailed system information",
			Usage:       []string{"sysinfo"},
			Handler:     h.sysinfo,
		},
		{
			Name:        domain.HistoryCommandName,
			Description: "Show command history",
			Usage:       []string{"history [-c]", "history     - List recent commands", "history -c  - Clear history"},
			Handler:     h.history,
		},
		{
			Name:        "errors",
			Description: "Show recent errors",
			Usage:       []string{"errors [-c]", "errors     - List recent errors", "errors -c  - Clear the error log"},
			Handler:     h.errors,
		},
		{
			Name:        "stats",
			Description: "Show command statistics",
			Usage:       []string{"stats [reset]", "stats        - Show per-command timings", "stats reset  - Drop recorded statistics"},
			Handler:     h.stats,
		},
		{
			Name:        "alias",
			Description: "Manage command aliases",
			Usage:       []string{"alias [name expansion] | [-d name] | [-c]", "alias ls help", "alias -d ls"},
			Handler:     h.alias,
		},
		{
			Name:        "alloc",
			Description: "Allocate from the heap",
			Usage:       []string{"alloc <size> | alloc -s <text>", "alloc 64", "alloc -s hello"},
			Handler:     h.alloc,
		},
	}
}

// usage prints the command's usage lines and records an invalid-arguments
// failure.
func (h *handlers) usage(name, detail string) domain.ErrorKind {
	if cmd, ok := h.Session.Registry().Lookup(name); ok && len(cmd.Usage) > 0 {
		h.p().Println("Usage: " + cmd.Usage[0])
		for _, line := range cmd.Usage[1:] {
			h.p().Println("       " + line)
		}
	}
	return h.Session.Fail(domain.KindInvalidArgs, name, detail)
}
