package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/bareshell/internal/app"
	"github.com/doeshing/bareshell/internal/domain"
)

// NewExecCommand runs shell lines from arguments or stdin without the line
// editor.
func NewExecCommand(settings *Settings) *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "exec [line...]",
		Short: "Run shell lines non-interactively",
		Long: "Runs each argument as one shell line. Without arguments, lines are read from stdin.\n" +
			"The exit status reflects the last line, or the first failure with --fail-fast.",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := settings.Container(cmd, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer container.Close()
			return runLines(container, NewLineReader(cmd.InOrStdin()), args, failFast)
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first line that fails")
	return cmd
}

// runLines executes args, or every line of reader when args is empty. The
// reader also answers prompts such as the reboot confirmation.
func runLines(container *app.Container, reader *LineReader, args []string, failFast bool) error {
	session := container.Session
	session.AttachReader(reader)
	limit := container.Config.Limits.InputSize

	next := func(i int) (string, bool, error) {
		if len(args) > 0 {
			if i >= len(args) {
				return "", false, nil
			}
			line := args[i]
			if len(line) > limit-1 {
				line = line[:limit-1]
			}
			return line, true, nil
		}
		line, err := reader.ReadLine(limit)
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read line: %w", err)
		}
		return line, true, nil
	}

	last := domain.KindSuccess
	for i := 0; !session.Halted(); i++ {
		line, ok, err := next(i)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		last = session.Execute(line)
		if failFast && !last.OK() {
			return fmt.Errorf("line %d failed: %s", i+1, last.Message())
		}
	}
	if !last.OK() {
		return fmt.Errorf("last line failed: %s", last.Message())
	}
	return nil
}
