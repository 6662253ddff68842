package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/bareshell/internal/version"
)

func NewVersionCommand() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the bareshell build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line := version.Summary()
			if short {
				line = version.Version
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
