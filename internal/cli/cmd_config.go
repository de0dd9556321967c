package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/todos/internal/config"
)

const maskedSecret = "********"

// newConfigCmd creates the config command
func newConfigCmd(app *App) *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "config [key]",
		Short: "Show the effective configuration",
		Long: `Show the merged configuration from all sources.

Configuration is loaded with this priority (highest first):
  1. Flags: --db-driver, --dsn
  2. Environment variables (TODOS_*)
  3. .env file in the working directory (or --env-file)
  4. Config file: --config, .todos/config.yaml or ~/.todos/config.yaml
  5. Built-in defaults

Passwords are masked.

Examples:
  todos config                       # merged config as YAML
  todos config --source              # every key with where it came from
  todos config database.driver       # a single value`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationNeeds: needsConfig},
		RunE: func(cmd *cobra.Command, args []string) error {
			tc := app.Config
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				key := args[0]
				value, err := tc.Config.GetValue(key)
				if err != nil {
					return err
				}
				value = displayValue(key, value)
				if showSource {
					_, _ = fmt.Fprintf(out, "%s (from %s)\n", value, tc.GetTrackedSource(key))
				} else {
					_, _ = fmt.Fprintln(out, value)
				}
				return nil
			}

			if app.Opts.JSON {
				return app.printer(cmd).json(configEntries(tc))
			}
			if showSource {
				printConfigWithSources(out, tc)
				return nil
			}
			return printConfigAsYAML(out, tc.Config)
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "show where each value comes from")

	return cmd
}

func displayValue(key, value string) string {
	if config.IsSecret(key) && value != "" {
		return maskedSecret
	}
	return value
}

// printConfigAsYAML outputs the config as YAML with secrets masked.
func printConfigAsYAML(out io.Writer, cfg *config.Config) error {
	masked := *cfg
	if masked.Database.Postgres.Password != "" {
		masked.Database.Postgres.Password = maskedSecret
	}
	if masked.Database.MySQL.Password != "" {
		masked.Database.MySQL.Password = maskedSecret
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, _ = fmt.Fprint(out, string(data))
	return nil
}

// printConfigWithSources outputs config values with source annotations.
func printConfigWithSources(out io.Writer, tc *config.TrackedConfig) {
	for _, e := range configEntries(tc) {
		_, _ = fmt.Fprintf(out, "%s = %s (%s)\n", e.Key, e.Value, e.Source)
	}
}

type configEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func configEntries(tc *config.TrackedConfig) []configEntry {
	paths := config.AllConfigPaths()
	entries := make([]configEntry, 0, len(paths))
	for _, path := range paths {
		value, err := tc.Config.GetValue(path)
		if err != nil {
			continue
		}
		entries = append(entries, configEntry{
			Key:    path,
			Value:  displayValue(path, value),
			Source: tc.GetTrackedSource(path).String(),
		})
	}
	return entries
}
