package git

import (
	"bytes"
	"errors"
	"os/exec"
)

// Executor defines an interface for running git commands, so tests can
// substitute a scripted implementation.
type Executor interface {
	// Run executes a command, discarding output
	Run(cmd *exec.Cmd) error

	// RunWithOutput executes a command and returns its stdout
	RunWithOutput(cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default Executor backed by os/exec
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Run implements Executor.Run
func (*ExecExecutor) Run(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return newCommandError(cmd.Args, err, stderr.String())
	}
	return nil
}

// RunWithOutput implements Executor.RunWithOutput
func (*ExecExecutor) RunWithOutput(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), newCommandError(cmd.Args, err, stderr.String())
	}
	return stdout.String(), nil
}

// newCommandError builds a CommandError, extracting the exit code when present
func newCommandError(args []string, err error, stderr string) *CommandError {
	exitCode := 1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &CommandError{
		Args:     args,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}
