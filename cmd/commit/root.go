package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/commiterdev/commiter/internal/cli"
	"github.com/commiterdev/commiter/internal/config"
	"github.com/commiterdev/commiter/internal/generator"
	"github.com/commiterdev/commiter/internal/git"
	"github.com/commiterdev/commiter/internal/logging"
	"github.com/commiterdev/commiter/internal/prompt"
	"github.com/commiterdev/commiter/internal/storage"
)

// createRootCommand creates the main commit command. Positional arguments
// are forwarded verbatim to git commit.
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commit [flags] [-- <git commit args>]",
		Short: "Commit staged changes with generated messages",
		Long: `commit wraps git commit: it inspects staged changes, offers candidate
commit messages, lets you pick or type your own, and performs the commit.
Anything after -- is passed to git commit unchanged.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCommit,
	}

	rootCmd.Flags().BoolP("auto", "a", false, "commit immediately with the first generated message")
	rootCmd.Flags().BoolP("custom", "c", false, "type a custom commit message")
	rootCmd.Flags().BoolP("edit", "e", false, "compose the message in your git editor")
	rootCmd.MarkFlagsMutuallyExclusive("auto", "custom", "edit")

	rootCmd.AddCommand(createConfigCommand())

	return rootCmd
}

func runCommit(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	if err := logging.Init(fs); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	store, err := newStore(fs)
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	auto, err := cmd.Flags().GetBool("auto")
	if err != nil {
		return fmt.Errorf("failed to get auto flag: %w", err)
	}
	custom, err := cmd.Flags().GetBool("custom")
	if err != nil {
		return fmt.Errorf("failed to get custom flag: %w", err)
	}
	edit, err := cmd.Flags().GetBool("edit")
	if err != nil {
		return fmt.Errorf("failed to get edit flag: %w", err)
	}

	gitClient := git.NewClient(nil)
	prompter := prompt.NewLinerPrompter()
	defer func() { _ = prompter.Close() }()

	app := cli.NewApp(cfg, store, gitClient,
		generator.ForConfig(cfg, gitClient), prompter, cmd.OutOrStdout())

	_, err = app.Run(cli.Options{
		Auto:        auto,
		Custom:      custom,
		Edit:        edit,
		PassThrough: args,
	})
	return err
}

// newStore builds the configuration store at the fixed per-user path
func newStore(fs afero.Fs) (*config.Store, error) {
	configPath, err := storage.New(fs).ConfigPath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(fs, configPath), nil
}
