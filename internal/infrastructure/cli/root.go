// Package cli wires the cobra command tree of the bareshell binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/bareshell/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration taken from the environment.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Without a subcommand it starts
// an interactive session on the process's terminal.
func NewRootCmd(opts Options) *cobra.Command {
	settings := &commands.Settings{Verbose: opts.Verbose}

	root := &cobra.Command{
		Use:   "bareshell",
		Short: "bareshell - interactive command shell for a bare machine",
		Long: "bareshell is a line-oriented command shell with line editing, history,\n" +
			"aliases, batch sequences and guarded memory inspection commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, settings)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&settings.ConfigPath, "config", "", "Config file (default $BARESHELL_CONFIG or ~/.bareshell/config.yaml)")
	flags.BoolVarP(&settings.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")
	flags.BoolVar(&settings.NoColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		commands.NewExecCommand(settings),
		commands.NewDoctorCommand(settings),
		commands.NewConfigCommand(settings),
		commands.NewVersionCommand(),
	)
	return root
}
