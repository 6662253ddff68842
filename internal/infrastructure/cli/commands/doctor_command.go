package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/bareshell/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := settings.Container(cmd, strings.NewReader(""))
			if err != nil {
				displayDoctorReport(cmd.OutOrStdout(), domain.HealthReport{Checks: []domain.HealthCheck{{
					Name: "Config file", Status: domain.HealthError, Details: err.Error(),
				}}})
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			defer container.Close()

			report, err := container.DoctorService.Run(cmd.Context())
			displayDoctorReport(cmd.OutOrStdout(), report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if report.Failed() {
				return errors.New("diagnostics completed with errors")
			}
			return nil
		},
	}
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
