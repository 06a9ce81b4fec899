package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter returns canned responses in order
type scriptedPrompter struct {
	responses []string
	err       error
	calls     int
}

func (p *scriptedPrompter) Prompt(string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if p.calls >= len(p.responses) {
		return "", errors.New("script exhausted")
	}
	response := p.responses[p.calls]
	p.calls++
	return response, nil
}

func (*scriptedPrompter) Close() error { return nil }

var testCandidates = []string{"Update a.py", "Update 2 files"}

func TestSelectCandidateValidChoice(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{responses: []string{"2"}}
	index, err := SelectCandidate(prompter, testCandidates)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
}

func TestSelectCandidateDefaultsToFirst(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{responses: []string{""}}
	index, err := SelectCandidate(prompter, testCandidates)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestSelectCandidateRepromptsOnBadInput(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{responses: []string{"abc", "9", "1"}}
	index, err := SelectCandidate(prompter, testCandidates)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
	assert.Equal(t, 3, prompter.calls)
}

func TestSelectCandidateExhaustsRetries(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{responses: []string{"x", "x", "x", "x", "x", "x"}}
	_, err := SelectCandidate(prompter, testCandidates)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, maxAttempts, inputErr.Attempts)
	assert.Equal(t, maxAttempts, prompter.calls)
}

func TestSelectCandidatePropagatesCancellation(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{err: errors.New("cancelled by user")}
	_, err := SelectCandidate(prompter, testCandidates)
	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*InputError))
}

func TestCustomMessage(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{responses: []string{"", "  ", "Fix login bug"}}
	message, err := CustomMessage(prompter)
	require.NoError(t, err)
	assert.Equal(t, "Fix login bug", message)
}

func TestCustomMessageExhaustsRetries(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{responses: []string{"", "", "", "", ""}}
	_, err := CustomMessage(prompter)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"yes", "y", true},
		{"yes word", "yes", true},
		{"default empty", "", true},
		{"no", "n", false},
		{"no word", "NO", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prompter := &scriptedPrompter{responses: []string{tt.response}}
			confirmed, err := Confirm(prompter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, confirmed)
		})
	}
}

func TestConfirmRepromptsOnGarbage(t *testing.T) {
	t.Parallel()

	prompter := &scriptedPrompter{responses: []string{"maybe", "n"}}
	confirmed, err := Confirm(prompter)
	require.NoError(t, err)
	assert.False(t, confirmed)
}
