// Package commands holds the cobra subcommands of the bareshell binary.
package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/bareshell/internal/app"
)

// Settings are the root command's persistent flags.
type Settings struct {
	ConfigPath string
	Verbose    bool
	NoColor    bool
}

// Container builds the dependency graph bound to cmd's output and in.
func (s *Settings) Container(cmd *cobra.Command, in io.Reader) (*app.Container, error) {
	return app.BuildContainer(cmd.Context(), app.Options{
		ConfigPath: s.ConfigPath,
		Verbose:    s.Verbose,
		NoColor:    s.NoColor,
		In:         in,
		Out:        cmd.OutOrStdout(),
	})
}
