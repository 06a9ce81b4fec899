// Package git invokes the git executable as an external collaborator for
// staged-change inspection and the final commit.
package git

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Status classifies a staged change
type Status string

const (
	StatusAdded    Status = "added"
	StatusModified Status = "modified"
	StatusDeleted  Status = "deleted"
	StatusRenamed  Status = "renamed"
	StatusCopied   Status = "copied"
	StatusUnknown  Status = "unknown"
)

// statusFromCode maps a git name-status code letter to a Status
func statusFromCode(code byte) Status {
	switch code {
	case 'A':
		return StatusAdded
	case 'M':
		return StatusModified
	case 'D':
		return StatusDeleted
	case 'R':
		return StatusRenamed
	case 'C':
		return StatusCopied
	default:
		return StatusUnknown
	}
}

// ChangedFile is one staged change reported by git
type ChangedFile struct {
	Path    string
	OldPath string // set for renames and copies
	Status  Status
}

// Client wraps the git executable for the operations commiter needs
type Client struct {
	executor Executor
}

// NewClient creates a git client with the given executor. A nil executor
// falls back to the real os/exec implementation.
func NewClient(executor Executor) *Client {
	if executor == nil {
		executor = NewExecExecutor()
	}
	return &Client{executor: executor}
}

func (*Client) command(args ...string) *exec.Cmd {
	return exec.Command("git", args...)
}

// IsRepository reports whether the working directory is inside a git repo
func (c *Client) IsRepository() bool {
	err := c.executor.Run(c.command("rev-parse", "--git-dir"))
	return err == nil
}

// StagedChanges lists the files staged for the next commit
func (c *Client) StagedChanges() ([]ChangedFile, error) {
	output, err := c.executor.RunWithOutput(c.command("diff", "--cached", "--name-status", "-z"))
	if err != nil {
		return nil, fmt.Errorf("failed to list staged changes: %w", err)
	}
	return parseNameStatus(output), nil
}

// StagedDiff returns the full diff of staged changes, used as AI provider context
func (c *Client) StagedDiff() (string, error) {
	output, err := c.executor.RunWithOutput(c.command("diff", "--cached"))
	if err != nil {
		return "", fmt.Errorf("failed to read staged diff: %w", err)
	}
	return output, nil
}

// Commit runs git commit with the message and any pass-through arguments,
// forwarded verbatim. Returns git's stdout on success.
func (c *Client) Commit(message string, extraArgs []string) (string, error) {
	args := append([]string{"commit", "-m", message}, extraArgs...)

	log.Debug().Strs("args", args).Msg("running git commit")

	output, err := c.executor.RunWithOutput(c.command(args...))
	if err != nil {
		return output, err
	}
	return output, nil
}

// EditorCommand resolves the editor for composing a commit message: the
// configured override first, then git's own GIT_EDITOR, then nano.
func (c *Client) EditorCommand(override string) string {
	if override != "" {
		return override
	}
	output, err := c.executor.RunWithOutput(c.command("var", "GIT_EDITOR"))
	if err == nil {
		if editor := strings.TrimSpace(output); editor != "" {
			return editor
		}
	}
	return "nano"
}

// parseNameStatus parses `git diff --name-status -z` output. Entries are
// NUL-separated: a status code followed by a path, with rename and copy
// records carrying the old path before the new one.
func parseNameStatus(output string) []ChangedFile {
	fields := strings.Split(output, "\x00")
	var files []ChangedFile

	for i := 0; i < len(fields); {
		status := fields[i]
		if status == "" {
			i++
			continue
		}

		code := status[0]
		if code == 'R' || code == 'C' {
			if i+2 >= len(fields) {
				break
			}
			oldPath, newPath := fields[i+1], fields[i+2]
			if oldPath != "" && newPath != "" {
				files = append(files, ChangedFile{
					Path:    newPath,
					OldPath: oldPath,
					Status:  statusFromCode(code),
				})
			}
			i += 3
			continue
		}

		if i+1 >= len(fields) {
			break
		}
		if path := fields[i+1]; path != "" {
			files = append(files, ChangedFile{Path: path, Status: statusFromCode(code)})
		}
		i += 2
	}

	return files
}

// CommandError reports a failed git invocation. The stderr text is kept
// verbatim so the user sees git's own diagnostics.
type CommandError struct {
	Err      error
	Stderr   string
	Args     []string
	ExitCode int
}

func (e *CommandError) Error() string {
	command := strings.Join(e.Args, " ")
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		return fmt.Sprintf("%s failed: %s", command, stderr)
	}
	return fmt.Sprintf("%s failed: %v", command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
