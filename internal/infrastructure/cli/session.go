package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/bareshell/internal/app"
	"github.com/doeshing/bareshell/internal/infrastructure/cli/commands"
	"github.com/doeshing/bareshell/internal/pkg/ansi"
	"github.com/doeshing/bareshell/internal/version"
)

// runInteractive puts the terminal in raw mode, prints the boot banner and
// runs the read-execute loop until end of input or reboot.
func runInteractive(cmd *cobra.Command, settings *commands.Settings) error {
	container, err := app.BuildContainer(cmd.Context(), app.Options{
		ConfigPath: settings.ConfigPath,
		Verbose:    settings.Verbose,
		NoColor:    settings.NoColor,
	})
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.Console.EnableRaw(); err != nil {
		return err
	}
	printBanner(container)
	return container.Session.Run(cmd.Context())
}

func printBanner(c *app.Container) {
	p := c.Session.Printer()
	mem := c.Config.Memory
	p.Line(ansi.Bold+ansi.BrightCyan, "bareshell "+version.Version)
	p.Printf("RAM 0x%08x-0x%08x, heap at 0x%08x\n", mem.RAMBase, mem.RAMBase+mem.RAMSize-1, mem.HeapStart)
	p.Printf("%d commands, %d aliases loaded\n", len(c.Session.Registry().Commands()), c.Session.Aliases().Len())
	p.Println()
	p.Info("Welcome! Type 'help' for available commands.")
	p.Println("Use arrow keys for history, Tab for completion.")
	p.Println()
}
