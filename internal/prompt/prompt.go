// Package prompt provides the interactive input used to pick, type and
// confirm commit messages.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

// maxAttempts bounds re-prompting on malformed input before the flow
// fails with an *InputError.
const maxAttempts = 5

// Prompter interface wraps basic prompting functionality for testability
type Prompter interface {
	Prompt(string) (string, error)
	Close() error
}

// LinerPrompter wraps liner.State to implement Prompter interface
type LinerPrompter struct {
	*liner.State
}

// NewLinerPrompter creates a new liner-based prompter
func NewLinerPrompter() Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{State: line}
}

// Prompt reads one line, mapping Ctrl+C and EOF to a cancellation error
func (p *LinerPrompter) Prompt(text string) (string, error) {
	result, err := p.State.Prompt(text)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errors.New("cancelled by user")
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return result, nil
}

// SelectCandidate reads a 1-based choice from the numbered candidate list
// and returns its index. Out-of-range or non-numeric input re-prompts;
// exhausting the retry bound returns an *InputError.
func SelectCandidate(prompter Prompter, candidates []string) (int, error) {
	promptText := color.CyanString("Select option (1-%d) [1]: ", len(candidates))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := prompter.Prompt(promptText)
		if err != nil {
			return 0, err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			// Default to the top-ranked candidate
			return 0, nil
		}

		choice, err := strconv.Atoi(input)
		if err != nil {
			color.Red("Please enter a valid number")
			continue
		}
		if choice < 1 || choice > len(candidates) {
			color.Red("Please enter a number between 1 and %d", len(candidates))
			continue
		}
		return choice - 1, nil
	}

	return 0, &InputError{Attempts: maxAttempts, What: "candidate selection"}
}

// CustomMessage reads a non-empty commit message line. Empty input
// re-prompts up to the retry bound.
func CustomMessage(prompter Prompter) (string, error) {
	promptText := color.CyanString("Commit message: ")

	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := prompter.Prompt(promptText)
		if err != nil {
			return "", err
		}

		if message := strings.TrimSpace(input); message != "" {
			return message, nil
		}
		color.Yellow("Message cannot be empty")
	}

	return "", &InputError{Attempts: maxAttempts, What: "custom message"}
}

// Confirm asks a yes/no question about the final message. Empty input
// defaults to yes.
func Confirm(prompter Prompter) (bool, error) {
	promptText := color.CyanString("Proceed with this commit message? [Y/n]: ")

	for attempt := 0; attempt < maxAttempts; attempt++ {
		input, err := prompter.Prompt(promptText)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			color.Red("Please answer y or n")
		}
	}

	return false, &InputError{Attempts: maxAttempts, What: "confirmation"}
}

// InputError reports exhausted retries on malformed interactive input
type InputError struct {
	What     string
	Attempts int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("no valid input for %s after %d attempts", e.What, e.Attempts)
}
