package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/commiterdev/commiter/internal/git"
)

const (
	defaultOllamaModel = "llama3.2"
	maxDiffContext     = 2000 // bytes of diff sent to the model
	requestTimeout     = 30 * time.Second
)

// Ollama generates commit messages with a local Ollama server
type Ollama struct {
	httpClient *http.Client
	diff       DiffSource
	model      string
	baseURL    string
}

// NewOllama creates an Ollama-backed provider. The placeholder model name
// from a default config resolves to a real default.
func NewOllama(model, baseURL string, diff DiffSource) *Ollama {
	if model == "" || model == "placeholder" {
		model = defaultOllamaModel
	}
	return &Ollama{
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		diff:       diff,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type generateRequest struct {
	Options map[string]any `json:"options,omitempty"`
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate implements Provider using the staged diff as model context
func (o *Ollama) Generate(files []git.ChangedFile, limit int) ([]string, error) {
	if len(files) == 0 || limit < 1 {
		return nil, nil
	}

	diffContent, err := o.diff.StagedDiff()
	if err != nil {
		return nil, fmt.Errorf("failed to read diff for generation: %w", err)
	}
	if strings.TrimSpace(diffContent) == "" {
		return nil, nil
	}

	prompt := buildPrompt(diffContent, limit)

	response, err := o.request(prompt)
	if err != nil {
		return nil, err
	}

	messages := parseResponse(response, limit)
	if len(messages) == 0 {
		return nil, errors.New("model returned no usable commit messages")
	}

	log.Debug().Int("count", len(messages)).Str("model", o.model).Msg("ollama generation complete")
	return messages, nil
}

func (o *Ollama) request(prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.7,
			"top_p":       0.9,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	resp, err := o.httpClient.Post(o.baseURL+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to reach ollama at %s: %w", o.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("ollama error: %s", decoded.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	return decoded.Response, nil
}

// buildPrompt creates a focused prompt for commit message generation
func buildPrompt(diffContent string, count int) string {
	if len(diffContent) > maxDiffContext {
		diffContent = diffContent[:maxDiffContext] + "\n... (truncated)"
	}

	return fmt.Sprintf(`You are an expert at writing clear, concise git commit messages.
Based on the following git diff, generate %d different commit message options.

Rules:
- Use conventional commit format when appropriate (feat:, fix:, docs:, style:, refactor:, test:, chore:)
- Keep messages under 50 characters for the subject line
- Be specific about what changed
- Use imperative mood (e.g., "Add feature" not "Added feature")
- Each message must be on a separate line
- Do not include any markdown, backticks, code fences, bullet points, numbering, or quotation marks
- Output must be plain text only: one commit message per line, nothing else

Git diff:
%s

Generate %d commit message options:`, count, diffContent, count)
}

// parseResponse extracts clean commit messages from model output, which
// tends to arrive with numbering, bullets or fences despite the prompt.
func parseResponse(response string, limit int) []string {
	var messages []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		if hasChattyPrefix(line) {
			continue
		}

		line = stripNumbering(line)
		line = strings.Trim(line, "\"'`")
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimPrefix(line, "• ")
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4 {
			line = strings.TrimSpace(line[2 : len(line)-2])
		}

		if len(line) > 5 {
			messages = append(messages, line)
			if len(messages) >= limit {
				break
			}
		}
	}

	return messages
}

func hasChattyPrefix(line string) bool {
	for _, prefix := range []string{"Here are", "Based on", "Options:"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// stripNumbering removes "1." or "1)" style list prefixes
func stripNumbering(line string) string {
	if line == "" || line[0] < '0' || line[0] > '9' {
		return line
	}
	for _, sep := range []string{".", ")"} {
		if _, rest, found := strings.Cut(line, sep); found {
			return strings.TrimSpace(rest)
		}
	}
	return line
}
