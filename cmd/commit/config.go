package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/commiterdev/commiter/internal/config"
)

// configOptions maps command flags to configuration keys
var configOptions = []struct {
	flag string
	key  string
}{
	{"interactive-mode", "interactive_mode"},
	{"auto-commit", "auto_commit"},
	{"max-choices", "max_choices"},
	{"ai-provider", "ai_provider"},
	{"ai-model", "ai_model"},
	{"ai-base-url", "ai_base_url"},
	{"git-editor", "git_editor"},
}

// createConfigCommand creates the config subcommand
func createConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update commiter configuration",
		Long: `Show the current configuration or update individual options, e.g.:

  commit config --show
  commit config --auto-commit true
  commit config --max-choices 5`,
		SilenceUsage: true,
		RunE:         runConfig,
	}

	cmd.Flags().Bool("show", false, "print the current configuration")
	for _, option := range configOptions {
		cmd.Flags().String(option.flag, "", "set "+option.key)
	}

	return cmd
}

func runConfig(cmd *cobra.Command, _ []string) error {
	store, err := newStore(afero.NewOsFs())
	if err != nil {
		return err
	}

	updated := false
	for _, option := range configOptions {
		if !cmd.Flags().Changed(option.flag) {
			continue
		}
		value, flagErr := cmd.Flags().GetString(option.flag)
		if flagErr != nil {
			return fmt.Errorf("failed to get %s flag: %w", option.flag, flagErr)
		}
		if err := store.Update(option.key, value); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
			"Configuration updated: %s = %s\n", option.key, value)
		updated = true
	}

	show, err := cmd.Flags().GetBool("show")
	if err != nil {
		return fmt.Errorf("failed to get show flag: %w", err)
	}
	if show || !updated {
		return showConfig(cmd.OutOrStdout(), store)
	}
	return nil
}

func showConfig(out io.Writer, store *config.Store) error {
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	color.New(color.FgBlue, color.Bold).Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  interactive_mode: %v\n", cfg.InteractiveMode)
	fmt.Fprintf(out, "  auto_commit:      %v\n", cfg.AutoCommit)
	fmt.Fprintf(out, "  max_choices:      %d\n", cfg.MaxChoices)
	fmt.Fprintf(out, "  ai_provider:      %s\n", cfg.AIProvider)
	fmt.Fprintf(out, "  ai_model:         %s\n", cfg.AIModel)
	fmt.Fprintf(out, "  ai_base_url:      %s\n", cfg.AIBaseURL)
	fmt.Fprintf(out, "  git_editor:       %s\n", displayValue(cfg.GitEditor))
	fmt.Fprintf(out, "\nFile: %s\n", store.Path())
	return nil
}

func displayValue(value string) string {
	if value == "" {
		return "(unset)"
	}
	return value
}
