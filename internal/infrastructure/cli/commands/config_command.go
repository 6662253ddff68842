package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/bareshell/internal/domain"
	"github.com/doeshing/bareshell/internal/infrastructure/config"
)

const msgNoDifferencesFromDefault = "No differences from default configuration."

// NewConfigCommand creates the config command with all subcommands. The
// configuration file is only ever read.
func NewConfigCommand(settings *Settings) *cobra.Command {
	var diff bool

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect bareshell configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if diff {
				return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), settings)
			}
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), settings)
		},
	}
	configCmd.Flags().BoolVar(&diff, "diff", false, "Show differences from the built-in defaults")

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd.Context(), cmd.OutOrStdout(), settings)
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get one configuration value (e.g. limits.history_size)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return getConfigurationValue(cmd.Context(), cmd.OutOrStdout(), settings, args[0])
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := loadConfig(cmd.Context(), settings); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
				return nil
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show differences from the built-in defaults",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), settings)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), config.NewFileLoader(settings.ConfigPath).Path())
				return nil
			},
		},
	)
	return configCmd
}

func loadConfig(ctx context.Context, settings *Settings) (domain.Config, error) {
	return config.NewFileLoader(settings.ConfigPath).Load(ctx)
}

func showConfiguration(ctx context.Context, out io.Writer, settings *Settings) error {
	cfg, err := loadConfig(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func getConfigurationValue(ctx context.Context, out io.Writer, settings *Settings, keyPath string) error {
	cfg, err := loadConfig(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	tree, err := configTree(cfg)
	if err != nil {
		return err
	}
	value, ok := traverse(tree, strings.Split(keyPath, "."))
	if !ok {
		return fmt.Errorf("key %s not found in configuration", keyPath)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func showConfigurationDiff(ctx context.Context, out io.Writer, settings *Settings) error {
	current, err := loadConfig(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to load current configuration: %w", err)
	}
	defaults, err := config.Defaults()
	if err != nil {
		return err
	}
	diff := cmp.Diff(defaults, current)
	if diff == "" {
		fmt.Fprintln(out, msgNoDifferencesFromDefault)
		return nil
	}
	fmt.Fprintln(out, diff)
	return nil
}

// configTree converts cfg to generic YAML values keyed by the file's names.
func configTree(cfg domain.Config) (interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	var tree interface{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode config tree: %w", err)
	}
	return tree, nil
}

// traverse walks maps by key and sequences by index.
func traverse(node interface{}, keys []string) (interface{}, bool) {
	for _, key := range keys {
		switch typed := node.(type) {
		case map[string]interface{}:
			next, ok := typed[key]
			if !ok {
				return nil, false
			}
			node = next
		case []interface{}:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(typed) {
				return nil, false
			}
			node = typed[i]
		default:
			return nil, false
		}
	}
	return node, true
}
