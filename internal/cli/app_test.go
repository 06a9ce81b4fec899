package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/commiterdev/commiter/internal/config"
	"github.com/commiterdev/commiter/internal/generator"
	"github.com/commiterdev/commiter/internal/git"
	"github.com/commiterdev/commiter/internal/logging"
)

func TestMain(m *testing.M) {
	logging.InitTest()
	goleak.VerifyTestMain(m)
}

type commitCall struct {
	message string
	args    []string
}

// fakeGit is a scripted stand-in for the git collaborator
type fakeGit struct {
	stagedErr    error
	commitErr    error
	commitOutput string
	editor       string
	staged       []git.ChangedFile
	commits      []commitCall
	isRepo       bool
}

func (f *fakeGit) IsRepository() bool { return f.isRepo }

func (f *fakeGit) StagedChanges() ([]git.ChangedFile, error) {
	return f.staged, f.stagedErr
}

func (f *fakeGit) Commit(message string, extraArgs []string) (string, error) {
	f.commits = append(f.commits, commitCall{message: message, args: extraArgs})
	if f.commitErr != nil {
		return "", f.commitErr
	}
	return f.commitOutput, nil
}

func (f *fakeGit) EditorCommand(override string) string {
	if override != "" {
		return override
	}
	return f.editor
}

// scriptedPrompter returns canned responses in order
type scriptedPrompter struct {
	responses []string
	calls     int
}

func (p *scriptedPrompter) Prompt(string) (string, error) {
	if p.calls >= len(p.responses) {
		return "", errors.New("prompter script exhausted")
	}
	response := p.responses[p.calls]
	p.calls++
	return response, nil
}

func (*scriptedPrompter) Close() error { return nil }

// failingProvider always errors, to exercise the heuristic fallback
type failingProvider struct{}

func (failingProvider) Generate([]git.ChangedFile, int) ([]string, error) {
	return nil, errors.New("model unreachable")
}

func stagedPython() []git.ChangedFile {
	return []git.ChangedFile{
		{Path: "src/main.py", Status: git.StatusModified},
		{Path: "tests/test_main.py", Status: git.StatusAdded},
	}
}

func newTestApp(cfg *config.Config, gitClient *fakeGit, responses ...string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := NewApp(cfg, nil, gitClient, generator.Heuristic{},
		&scriptedPrompter{responses: responses}, out)
	return app, out
}

func TestRunNothingStaged(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true}
	app, out := newTestApp(config.DefaultConfig(), gitClient)

	result, err := app.Run(Options{})
	require.NoError(t, err)
	assert.Equal(t, ResultAborted, result)
	assert.Empty(t, gitClient.commits, "no commit call expected")
	assert.Contains(t, out.String(), "Nothing to commit")
}

func TestRunOutsideRepository(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(config.DefaultConfig(), &fakeGit{isRepo: false})

	_, err := app.Run(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in a git repository")
}

func TestRunAutoFlagOverridesConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.AutoCommit = false // flag must still win

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, _ := newTestApp(cfg, gitClient)

	result, err := app.Run(Options{Auto: true})
	require.NoError(t, err)
	assert.Equal(t, ResultCommitted, result)

	require.Len(t, gitClient.commits, 1)
	assert.Equal(t, "Update 2 Python files", gitClient.commits[0].message)
}

func TestRunAutoFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.AutoCommit = true

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, _ := newTestApp(cfg, gitClient)

	result, err := app.Run(Options{})
	require.NoError(t, err)
	assert.Equal(t, ResultCommitted, result)
	require.Len(t, gitClient.commits, 1)
}

func TestRunNonInteractiveConfigBehavesAsAuto(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.InteractiveMode = false

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, _ := newTestApp(cfg, gitClient)

	result, err := app.Run(Options{})
	require.NoError(t, err)
	assert.Equal(t, ResultCommitted, result)
}

func TestRunInteractiveSelectAndConfirm(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true, staged: stagedPython(), commitOutput: "2 files changed\n"}
	app, out := newTestApp(config.DefaultConfig(), gitClient, "1", "y")

	result, err := app.Run(Options{})
	require.NoError(t, err)
	assert.Equal(t, ResultCommitted, result)

	require.Len(t, gitClient.commits, 1)
	assert.Equal(t, "Update 2 Python files", gitClient.commits[0].message)
	assert.Contains(t, out.String(), "Commit successful")
	assert.Contains(t, out.String(), "2 files changed")
}

func TestRunInteractiveDeclineReturnsToSelection(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, _ := newTestApp(config.DefaultConfig(), gitClient, "1", "n", "2", "y")

	result, err := app.Run(Options{})
	require.NoError(t, err)
	assert.Equal(t, ResultCommitted, result)

	require.Len(t, gitClient.commits, 1)
	assert.Equal(t, "Update 2 files", gitClient.commits[0].message)
}

func TestRunInteractiveRepeatedDeclinesAbort(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, out := newTestApp(config.DefaultConfig(), gitClient,
		"1", "n", "1", "n", "1", "n")

	result, err := app.Run(Options{})
	require.NoError(t, err)
	assert.Equal(t, ResultAborted, result)
	assert.Empty(t, gitClient.commits)
	assert.Contains(t, out.String(), "Commit cancelled")
}

func TestRunCustomMessage(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, _ := newTestApp(config.DefaultConfig(), gitClient, "Rework auth flow", "y")

	result, err := app.Run(Options{Custom: true})
	require.NoError(t, err)
	assert.Equal(t, ResultCommitted, result)

	require.Len(t, gitClient.commits, 1)
	assert.Equal(t, "Rework auth flow", gitClient.commits[0].message)
}

func TestRunPassThroughArgsForwarded(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, _ := newTestApp(config.DefaultConfig(), gitClient)

	_, err := app.Run(Options{Auto: true, PassThrough: []string{"--amend", "--no-verify"}})
	require.NoError(t, err)

	require.Len(t, gitClient.commits, 1)
	assert.Equal(t, []string{"--amend", "--no-verify"}, gitClient.commits[0].args)
}

func TestRunCommitFailureSurfaced(t *testing.T) {
	t.Parallel()

	commitErr := &git.CommandError{
		Args:     []string{"git", "commit"},
		ExitCode: 1,
		Stderr:   "pre-commit hook failed\n",
	}
	gitClient := &fakeGit{isRepo: true, staged: stagedPython(), commitErr: commitErr}
	app, _ := newTestApp(config.DefaultConfig(), gitClient)

	_, err := app.Run(Options{Auto: true})
	require.Error(t, err)

	var cmdErr *git.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, cmdErr.Error(), "pre-commit hook failed")
}

func TestRunProviderFailureFallsBackToHeuristic(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	out := &bytes.Buffer{}
	app := NewApp(config.DefaultConfig(), nil, gitClient, failingProvider{},
		&scriptedPrompter{}, out)

	result, err := app.Run(Options{Auto: true})
	require.NoError(t, err)
	assert.Equal(t, ResultCommitted, result)

	require.Len(t, gitClient.commits, 1)
	assert.Equal(t, "Update 2 Python files", gitClient.commits[0].message)
	assert.Contains(t, out.String(), "using heuristics")
}

func TestRunInputExhaustionFails(t *testing.T) {
	t.Parallel()

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, _ := newTestApp(config.DefaultConfig(), gitClient,
		"bogus", "bogus", "bogus", "bogus", "bogus")

	_, err := app.Run(Options{})
	require.Error(t, err)
	assert.Empty(t, gitClient.commits)
}

func TestRunMaxChoicesLimitsCandidates(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.MaxChoices = 1

	gitClient := &fakeGit{isRepo: true, staged: stagedPython()}
	app, out := newTestApp(cfg, gitClient, "1", "y")

	_, err := app.Run(Options{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "1) Update 2 Python files")
	assert.NotContains(t, out.String(), "2) ")
}
