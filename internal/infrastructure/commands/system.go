package commands

import (
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/pkg/ansi"
	"github.com/doeshing/bareshell/internal/version"
)

func (h *handlers) help(args []string) domain.ErrorKind {
	p := h.p()
	if len(args) > 1 {
		cmd, ok := h.Session.Registry().Lookup(args[1])
		if !ok {
			p.Printf("Unknown command: '%s'\n", args[1])
			return h.Session.Fail(domain.KindNotFound, "help", args[1])
		}
		p.Printf("Command: %s\n", cmd.Name)
		p.Printf("Description: %s\n", cmd.Description)
		if len(cmd.Usage) > 0 {
			p.Printf("Usage: %s\n", cmd.Usage[0])
		}
		if len(cmd.Usage) > 1 {
			p.Println("Examples:")
			for _, line := range cmd.Usage[1:] {
				p.Println("  " + line)
			}
		}
		return domain.KindSuccess
	}

	p.Header("bareshell - Available Commands")
	p.Println()
	for _, cmd := range h.Session.Registry().Commands() {
		p.Printf("%s - %s\n", p.Paint(ansi.Green, fmt.Sprintf("%-8s", cmd.Name)), cmd.Description)
	}
	p.Println()
	p.Println("Type 'help <command>' for detailed information about a command.")
	p.Println("Example: help echo")
	return domain.KindSuccess
}

func (h *handlers) echo(args []string) domain.ErrorKind {
	if len(args) < 2 {
		return h.usage("echo", "nothing to print")
	}
	h.p().Println(strings.Join(args[1:], " "))
	return domain.KindSuccess
}

func (h *handlers) clear(args []string) domain.ErrorKind {
	if len(args) > 2 {
		return h.usage("clear", "too many arguments")
	}
	mode := "screen"
	if len(args) == 2 {
		mode = args[1]
	}
	p := h.p()
	switch mode {
	case "screen":
		p.Print(ansi.ClearScreen + ansi.CursorHome)
	case "line":
		p.Print(ansi.ClearLine)
	case "eol":
		p.Print(ansi.ClearToEOL)
	case "bol":
		p.Print(ansi.ClearToBOL)
	default:
		p.Println("Valid modes: screen, line, eol, bol")
		return h.Session.Fail(domain.KindInvalidArgs, "clear", "unknown mode '"+mode+"'")
	}
	return domain.KindSuccess
}

func (h *handlers) about(args []string) domain.ErrorKind {
	if len(args) > 1 {
		return h.usage("about", "takes no arguments")
	}
	p := h.p()
	p.Header("bareshell Information")
	p.Println()
	p.Println("Shell: bareshell " + version.Version)
	p.Println("Machine: simulated single address space")
	p.Printf("Memory: %s RAM at 0x%08x, bump allocator with %s heap\n",
		humanize.IBytes(h.Config.Memory.RAMSize), h.Config.Memory.RAMBase, humanize.IBytes(h.Config.Memory.HeapSize))
	p.Println()
	p.Println("Features:")
	p.Println("- Line editing with history recall and tab completion")
	p.Println("- Command aliases and batch sequences (; && ||)")
	p.Println("- Guarded memory inspection (peek, poke, dump)")
	p.Printf("- %d built-in commands\n", len(h.Session.Registry().Commands()))
	p.Println()
	p.Println("No filesystem, no processes, no interrupts")
	return domain.KindSuccess
}

func (h *handlers) uptime(args []string) domain.ErrorKind {
	if len(args) > 1 {
		return h.usage("uptime", "takes no arguments")
	}
	started := h.Session.Started()
	elapsed := time.Since(started).Round(time.Second)
	h.p().Printf("Session uptime: %s (started %s)\n", elapsed, humanize.Time(started))
	return domain.KindSuccess
}

func (h *handlers) calc(args []string) domain.ErrorKind {
	p := h.p()
	if len(args) != 4 {
		h.Session.Fail(domain.KindInvalidArgs, "calc", "wrong argument count")
		p.Println("Supported operators: +, -, *, /")
		p.Println("Examples:")
		p.Println("  calc 10 + 5")
		p.Println("  calc 6 * 7")
		return domain.KindInvalidArgs
	}
	a, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return h.Session.Fail(domain.KindSyntax, "calc", "first argument is not a valid number")
	}
	b, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return h.Session.Fail(domain.KindSyntax, "calc", "second argument is not a valid number")
	}

	var result int64
	switch args[2] {
	case "+":
		result = a + b
		if (b > 0 && result < a) || (b < 0 && result > a) {
			return h.Session.Fail(domain.KindRange, "calc", "overflow")
		}
	case "-":
		result = a - b
		if (b > 0 && result > a) || (b < 0 && result < a) {
			return h.Session.Fail(domain.KindRange, "calc", "overflow")
		}
	case "*":
		if a != 0 && b != 0 && (a == math.MinInt64 || b == math.MinInt64 || absGreater(a, math.MaxInt64/abs(b))) {
			return h.Session.Fail(domain.KindRange, "calc", "overflow")
		}
		result = a * b
	case "/":
		if b == 0 {
			return h.Session.Fail(domain.KindRange, "calc", "division by zero")
		}
		if a == math.MinInt64 && b == -1 {
			return h.Session.Fail(domain.KindRange, "calc", "overflow")
		}
		result = a / b
	default:
		p.Println("Supported operators: +, -, *, /")
		return h.Session.Fail(domain.KindSyntax, "calc", "unknown operator: "+args[2])
	}
	p.Printf("%d %s %d = %d\n", a, args[2], b, result)
	return domain.KindSuccess
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func absGreater(v, limit int64) bool {
	return abs(v) > limit
}

func (h *handlers) color(args []string) domain.ErrorKind {
	p := h.p()
	if len(args) == 1 {
		state := "disabled"
		if p.Enabled() {
			state = "enabled"
		}
		p.Printf("Color support: %s\n", state)
		if p.Enabled() {
			p.Println("Color test:")
			p.Success("  Success (green)")
			p.Error("  Error (red)")
			p.Warning("  Warning (yellow)")
			p.Info("  Info (cyan)")
			p.Line(ansi.Bold+ansi.Magenta, "  Bold magenta")
		}
		return domain.KindSuccess
	}
	if len(args) > 2 {
		return h.usage("color", "too many arguments")
	}

	switch args[1] {
	case "on", "enable":
		p.SetEnabled(true)
		p.Success("Colors enabled")
	case "off", "disable":
		p.SetEnabled(false)
		p.Println("Colors disabled")
	case "test":
		if !p.Enabled() {
			p.Println("Colors are disabled. Enable colors first with 'color on'")
			return domain.KindSuccess
		}
		p.Println("Color test - 16 basic colors:")
		basic := []struct{ code, name string }{
			{ansi.Black, "Black"}, {ansi.Red, "Red"}, {ansi.Green, "Green"}, {ansi.Yellow, "Yellow"},
			{ansi.Blue, "Blue"}, {ansi.Magenta, "Magenta"}, {ansi.Cyan, "Cyan"}, {ansi.White, "White"},
		}
		bright := []struct{ code, name string }{
			{ansi.BrightBlack, "Gray"}, {ansi.BrightRed, "BrightRed"}, {ansi.BrightGreen, "BrightGreen"},
			{ansi.BrightYellow, "BrightYellow"}, {ansi.BrightBlue, "BrightBlue"}, {ansi.BrightMagenta, "BrightMagenta"},
			{ansi.BrightCyan, "BrightCyan"}, {ansi.BrightWhite, "BrightWhite"},
		}
		for _, row := range [][]struct{ code, name string }{basic, bright} {
			parts := make([]string, 0, len(row))
			for _, c := range row {
				parts = append(parts, p.Paint(c.code, c.name))
			}
			p.Println(strings.Join(parts, " "))
		}
	default:
		p.Println("Valid options: on, off, enable, disable, test")
		return h.Session.Fail(domain.KindInvalidArgs, "color", "unknown option '"+args[1]+"'")
	}
	return domain.KindSuccess
}

// reboot asks for confirmation through the line editor and halts the
// session when the answer starts with y.
func (h *handlers) reboot(args []string) domain.ErrorKind {
	p := h.p()
	p.Line(ansi.Yellow, "=== SYSTEM REBOOT ===")
	p.Print("Are you sure you want to restart the system? (y/N): ")

	reader := h.Session.Reader()
	if reader == nil {
		p.Println()
		p.Println("Reboot cancelled.")
		return domain.KindSuccess
	}
	answer, err := reader.ReadLine(8)
	if err != nil || answer == "" || (answer[0] != 'y' && answer[0] != 'Y') {
		if err != nil {
			p.Println()
		}
		p.Println("Reboot cancelled.")
		return domain.KindSuccess
	}

	p.Println("Cleaning up system state...")
	p.Info("Shutting down bareshell...")
	p.Success("System will restart shortly.")
	p.Println("Goodbye!")
	h.Session.Halt()
	return domain.KindSuccess
}

func (h *handlers) sysinfo(args []string) domain.ErrorKind {
	if len(args) > 1 {
		return h.usage("sysinfo", "takes no arguments")
	}
	p := h.p()
	mem := h.Config.Memory
	guard := h.Config.Guard

	p.Header("bareshell SYSTEM INFORMATION")
	p.Println()

	p.Success("Shell")
	p.Printf("  Version: %s\n", version.Version)
	p.Printf("  Session: %s\n", h.Session.ID())
	p.Printf("  Commands: %d registered, %d/%d aliases\n",
		len(h.Session.Registry().Commands()), h.Session.Aliases().Len(), h.Session.Aliases().Cap())
	p.Println()

	p.Success("Host")
	p.Printf("  Runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	p.Printf("  CPUs: %d\n", runtime.NumCPU())
	p.Println()

	p.Success("Memory Configuration")
	p.Printf("  RAM: 0x%08x - 0x%08x (%s)\n", mem.RAMBase, mem.RAMBase+mem.RAMSize-1, humanize.IBytes(mem.RAMSize))
	p.Printf("  Heap Start: 0x%08x\n", mem.HeapStart)
	p.Printf("  Heap Size: %s (%s bytes)\n", humanize.IBytes(mem.HeapSize), humanize.Comma(int64(mem.HeapSize)))
	p.Printf("  Heap Alignment: %d bytes\n", mem.HeapAlignment)
	p.Println()

	p.Success("Address Guard")
	p.Printf("  Readable: 0x%x - 0x%x\n", guard.LowThreshold, guard.HighThreshold-1)
	p.Printf("  Console window: 0x%08x - 0x%08x (blocked)\n", guard.MMIOStart, guard.MMIOEnd)
	p.Printf("  Writable from: 0x%08x\n", guard.WriteBoundary)
	p.Println()

	p.Success("Current Status")
	p.Printf("  Uptime: %s\n", time.Since(h.Session.Started()).Round(time.Second))
	p.Printf("  History: %d/%d, errors logged: %d\n",
		h.Session.History().Len(), h.Session.History().Cap(), h.Session.ErrorLog().Len())
	h.printHeap()
	return domain.KindSuccess
}
