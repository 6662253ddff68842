package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/bareshell/internal/application/shell"
	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/pkg/ansi"
)

func (h *handlers) history(args []string) domain.ErrorKind {
	p := h.p()
	hist := h.Session.History()
	if len(args) > 1 {
		if len(args) != 2 || args[1] != "-c" {
			return h.usage(domain.HistoryCommandName, "unknown option")
		}
		hist.Clear()
		p.Success("History cleared")
		return domain.KindSuccess
	}
	if hist.Len() == 0 {
		p.Println("No commands in history.")
		return domain.KindSuccess
	}
	p.Header("COMMAND HISTORY")
	p.Println()
	for i, entry := range hist.Entries() {
		p.Printf("%s %s\n", p.Paint(ansi.BrightBlack, fmt.Sprintf("%3d", i+1)), entry.Command)
	}
	p.Println()
	p.Printf("Total commands: %d\n", hist.Len())
	if hist.Full() {
		p.Println("(History buffer is full - oldest commands are being overwritten)")
	}
	return domain.KindSuccess
}

func (h *handlers) errors(args []string) domain.ErrorKind {
	p := h.p()
	log := h.Session.ErrorLog()
	if len(args) > 1 {
		if len(args) != 2 || args[1] != "-c" {
			return h.usage("errors", "unknown option")
		}
		log.Clear()
		p.Success("Error log cleared")
		return domain.KindSuccess
	}
	if log.Len() == 0 {
		p.Info("No errors logged yet.")
		return domain.KindSuccess
	}
	p.Header("ERROR LOG")
	p.Println()
	for _, entry := range log.Entries() {
		line := fmt.Sprintf("[%d] %s: %s", entry.Timestamp, p.Paint(ansi.Yellow, entry.Command), p.Paint(ansi.Red, entry.Kind.Message()))
		if entry.Context != "" {
			line += " (" + entry.Context + ")"
		}
		p.Println(line)
	}
	p.Println()
	p.Printf("Total errors logged: %d\n", log.Len())
	if log.Full() {
		p.Println("(Error log is full - oldest errors are being overwritten)")
	}
	return domain.KindSuccess
}

func (h *handlers) stats(args []string) domain.ErrorKind {
	recorder := h.Session.Stats()
	if recorder == nil {
		return h.Session.Fail(domain.KindSystem, "stats", "statistics store unavailable")
	}
	if len(args) > 1 {
		if len(args) != 2 || args[1] != "reset" {
			return h.usage("stats", "unknown option")
		}
		if err := recorder.Reset(context.Background()); err != nil {
			return h.Session.Fail(domain.KindSystem, "stats", err.Error())
		}
		h.p().Success("Statistics reset")
		return domain.KindSuccess
	}
	summary, err := recorder.Summary(context.Background())
	if err != nil {
		return h.Session.Fail(domain.KindSystem, "stats", err.Error())
	}

	p := h.p()
	p.Header("Performance Statistics")
	p.Println()
	p.Printf("Total commands executed: %s\n", humanize.Comma(summary.TotalCommands))
	p.Printf("Commands tracked: %d/%d\n\n", len(summary.Commands), len(h.Session.Registry().Commands()))
	if len(summary.Commands) == 0 {
		p.Println("No command statistics available yet.")
		p.Println("Execute some commands and run 'stats' again to see performance data.")
		return domain.KindSuccess
	}

	p.Line(ansi.Yellow, fmt.Sprintf("%-12s %8s %8s %12s %12s %12s", "Command", "Count", "Failed", "Total", "Last", "Average"))
	p.Println(strings.Repeat("-", 70))
	for _, c := range summary.Commands {
		p.Printf("%s %8s %8s %12s %12s %12s\n",
			p.Paint(ansi.Green, fmt.Sprintf("%-12s", c.Name)),
			humanize.Comma(c.Calls), humanize.Comma(c.Failures),
			c.Total, c.Last, c.Average)
	}
	p.Println()
	if most, ok := summary.MostUsed(); ok {
		p.Printf("Most used command: %s (%s times)\n", p.Paint(ansi.BrightGreen, most.Name), humanize.Comma(most.Calls))
	}
	return domain.KindSuccess
}

func (h *handlers) alias(args []string) domain.ErrorKind {
	p := h.p()
	table := h.Session.Aliases()

	if len(args) == 1 {
		p.Header("Command Aliases")
		p.Println()
		all := table.All()
		if len(all) == 0 {
			p.Println("No aliases defined.")
			return domain.KindSuccess
		}
		var builtin, user []domain.Alias
		for _, a := range all {
			if a.Builtin {
				builtin = append(builtin, a)
			} else {
				user = append(user, a)
			}
		}
		if len(builtin) > 0 {
			p.Line(ansi.Yellow, "Built-in aliases:")
			for _, a := range builtin {
				p.Printf("  %s -> %s\n", p.Paint(ansi.Green, a.Name), p.Paint(ansi.BrightBlue, a.Expansion))
			}
		}
		if len(user) > 0 {
			if len(builtin) > 0 {
				p.Println()
			}
			p.Line(ansi.Yellow, "User-defined aliases:")
			for _, a := range user {
				p.Printf("  %s -> %s\n", p.Paint(ansi.Cyan, a.Name), p.Paint(ansi.BrightCyan, a.Expansion))
			}
		} else {
			p.Println()
			p.Println("No user-defined aliases. Use 'alias <name> <command>' to create one.")
		}
		p.Printf("\nTotal aliases: %d/%d\n", table.Len(), table.Cap())
		return domain.KindSuccess
	}

	switch args[1] {
	case "-d":
		if len(args) != 3 {
			return h.Session.Fail(domain.KindInvalidArgs, "alias", "Usage: alias -d <name>")
		}
		if err := table.Remove(args[2]); err != nil {
			return h.Session.Fail(domain.KindNotFound, "alias", err.Error())
		}
		p.Success("Alias removed successfully")
		return domain.KindSuccess
	case "-c":
		if len(args) != 2 {
			return h.Session.Fail(domain.KindInvalidArgs, "alias", "Usage: alias -c")
		}
		table.ClearUser()
		p.Success("All user-defined aliases cleared")
		return domain.KindSuccess
	}

	if len(args) < 3 {
		return h.Session.Fail(domain.KindSyntax, "alias", "Usage: alias [name expansion] | [-d name] | [-c]")
	}
	name, expansion := args[1], strings.Join(args[2:], " ")
	if err := table.Add(name, expansion, false); err != nil {
		switch {
		case errors.Is(err, shell.ErrInvalidAliasName):
			return h.Session.Fail(domain.KindSyntax, "alias", err.Error())
		case errors.Is(err, shell.ErrExpansionTooLong):
			return h.Session.Fail(domain.KindRange, "alias", err.Error())
		default:
			return h.Session.Fail(domain.KindMemory, "alias", err.Error())
		}
	}
	p.Printf("%s %s -> %s\n", p.Paint(ansi.Green, "Alias created:"), p.Paint(ansi.Cyan, name), p.Paint(ansi.BrightCyan, expansion))
	return domain.KindSuccess
}
