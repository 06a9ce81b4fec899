// Package cli implements the interactive commit flow: it queries staged
// changes, generates message candidates, drives selection and
// confirmation, and invokes the final git commit.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/commiterdev/commiter/internal/config"
	"github.com/commiterdev/commiter/internal/generator"
	"github.com/commiterdev/commiter/internal/git"
	"github.com/commiterdev/commiter/internal/prompt"
)

// maxDeclines bounds how many times a declined confirmation loops back
// to selection before the run aborts cleanly.
const maxDeclines = 3

// Result is the terminal state of one commit attempt
type Result int

const (
	// ResultCommitted means the commit was performed
	ResultCommitted Result = iota
	// ResultAborted means a clean no-op: nothing staged or user declined
	ResultAborted
)

// Options are the per-invocation flags of the commit command
type Options struct {
	PassThrough []string // forwarded verbatim to git commit
	Auto        bool
	Custom      bool
	Edit        bool
}

// GitClient is the subset of the git collaborator the controller needs
type GitClient interface {
	IsRepository() bool
	StagedChanges() ([]git.ChangedFile, error)
	Commit(message string, extraArgs []string) (string, error)
	EditorCommand(override string) string
}

// App orchestrates one commit attempt. Configuration and collaborators
// are passed in explicitly; there is no hidden global state.
type App struct {
	config   *config.Config
	store    *config.Store
	git      GitClient
	provider generator.Provider
	prompter prompt.Prompter
	out      io.Writer
}

// NewApp wires up a commit flow controller
func NewApp(cfg *config.Config, store *config.Store, gitClient GitClient,
	provider generator.Provider, prompter prompt.Prompter, out io.Writer,
) *App {
	return &App{
		config:   cfg,
		store:    store,
		git:      gitClient,
		provider: provider,
		prompter: prompter,
		out:      out,
	}
}

// Run executes the commit state machine and returns the terminal state.
// A non-nil error is the Failed state; the caller maps it to an exit code.
func (a *App) Run(opts Options) (Result, error) {
	if !a.git.IsRepository() {
		return ResultAborted, errors.New("not in a git repository, run this command inside one")
	}

	files, err := a.git.StagedChanges()
	if err != nil {
		return ResultAborted, err
	}
	if len(files) == 0 {
		color.New(color.FgYellow).Fprintln(a.out, "Nothing to commit: no staged changes found.")
		fmt.Fprintln(a.out, "Use 'git add <file>' to stage changes first.")
		return ResultAborted, nil
	}

	log.Debug().Int("staged", len(files)).Msg("starting commit flow")

	switch {
	case opts.Custom:
		return a.runCustom(opts)
	case opts.Edit:
		return a.runEditor(opts)
	case opts.Auto || a.config.AutoCommit:
		return a.runAuto(files, opts)
	case a.config.InteractiveMode:
		return a.runInteractive(files, opts)
	default:
		return a.runAuto(files, opts)
	}
}

// runAuto commits immediately with the top-ranked candidate
func (a *App) runAuto(files []git.ChangedFile, opts Options) (Result, error) {
	candidates, err := a.generate(files, 1)
	if err != nil {
		return ResultAborted, err
	}

	message := candidates[0]
	color.New(color.FgBlue).Fprintf(a.out, "Auto mode: committing with %q\n", message)
	return a.commit(message, opts)
}

// runInteractive renders candidates, reads a selection and confirms it.
// A declined confirmation returns to selection, a few times at most.
func (a *App) runInteractive(files []git.ChangedFile, opts Options) (Result, error) {
	candidates, err := a.generate(files, a.config.MaxChoices)
	if err != nil {
		return ResultAborted, err
	}

	a.printStagedFiles(files)

	for declines := 0; declines < maxDeclines; declines++ {
		a.printCandidates(candidates)

		index, err := prompt.SelectCandidate(a.prompter, candidates)
		if err != nil {
			return ResultAborted, err
		}
		message := candidates[index]

		confirmed, err := a.confirm(message)
		if err != nil {
			return ResultAborted, err
		}
		if confirmed {
			return a.commit(message, opts)
		}
	}

	color.New(color.FgYellow).Fprintln(a.out, "Commit cancelled.")
	return ResultAborted, nil
}

// runCustom reads a free-form message and confirms it
func (a *App) runCustom(opts Options) (Result, error) {
	for declines := 0; declines < maxDeclines; declines++ {
		message, err := prompt.CustomMessage(a.prompter)
		if err != nil {
			return ResultAborted, err
		}

		confirmed, err := a.confirm(message)
		if err != nil {
			return ResultAborted, err
		}
		if confirmed {
			return a.commit(message, opts)
		}
	}

	color.New(color.FgYellow).Fprintln(a.out, "Commit cancelled.")
	return ResultAborted, nil
}

// runEditor composes the message in the user's git editor
func (a *App) runEditor(opts Options) (Result, error) {
	message, err := a.editorMessage()
	if err != nil {
		return ResultAborted, err
	}
	if message == "" {
		color.New(color.FgYellow).Fprintln(a.out, "Empty commit message, aborting.")
		return ResultAborted, nil
	}
	return a.commit(message, opts)
}

// generate calls the configured provider, falling back to the heuristic
// when a remote provider fails. With at least one staged file the
// candidate list is never empty.
func (a *App) generate(files []git.ChangedFile, limit int) ([]string, error) {
	candidates, err := a.provider.Generate(files, limit)
	if err != nil {
		log.Warn().Err(err).Msg("provider failed, falling back to heuristic")
		color.New(color.FgYellow).Fprintf(a.out, "Message generation failed (%v), using heuristics.\n", err)
		candidates, err = generator.Heuristic{}.Generate(files, limit)
	}
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("failed to generate commit messages")
	}
	return candidates, nil
}

func (a *App) confirm(message string) (bool, error) {
	a.printMessage(message)
	return prompt.Confirm(a.prompter)
}

// commit invokes git commit with the chosen message and pass-through args
func (a *App) commit(message string, opts Options) (Result, error) {
	output, err := a.git.Commit(message, opts.PassThrough)
	if err != nil {
		return ResultAborted, err
	}

	color.New(color.FgGreen).Fprintln(a.out, "✓ Commit successful!")
	if output != "" {
		fmt.Fprint(a.out, output)
	}
	log.Debug().Str("message", message).Msg("commit performed")
	return ResultCommitted, nil
}
