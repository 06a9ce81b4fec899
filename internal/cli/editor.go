package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

const editorTemplate = `
# Please enter your commit message above this line.
# Lines starting with '#' will be ignored; an empty message aborts the commit.
`

// editorMessage opens the resolved git editor on a temp file and returns
// the composed message with comment lines stripped. An empty result means
// the user chose to abort.
func (a *App) editorMessage() (string, error) {
	editor := a.git.EditorCommand(a.config.GitEditor)

	tmpFile, err := os.CreateTemp("", "commiter-msg-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create message file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.WriteString(editorTemplate); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("failed to prepare message file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to prepare message file: %w", err)
	}

	log.Debug().Str("editor", editor).Msg("opening editor for commit message")

	// GIT_EDITOR may carry arguments ("code --wait")
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], tmpPath)...) //nolint:gosec // user-configured editor
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", parts[0], err)
	}

	content, err := os.ReadFile(tmpPath) //nolint:gosec // temp file we created
	if err != nil {
		return "", fmt.Errorf("failed to read message file: %w", err)
	}

	return stripComments(string(content)), nil
}

// stripComments drops '#' comment lines and surrounding blank lines
func stripComments(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}
