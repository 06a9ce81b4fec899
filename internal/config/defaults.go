package config

// Recognized configuration keys, matching the JSON field names.
const (
	keyInteractiveMode = "interactive_mode"
	keyAutoCommit      = "auto_commit"
	keyMaxChoices      = "max_choices"
	keyAIProvider      = "ai_provider"
	keyAIModel         = "ai_model"
	keyAIBaseURL       = "ai_base_url"
	keyGitEditor       = "git_editor"
)

var knownKeys = []string{
	keyInteractiveMode,
	keyAutoCommit,
	keyMaxChoices,
	keyAIProvider,
	keyAIModel,
	keyAIBaseURL,
	keyGitEditor,
}

// DefaultConfig returns the default commiter configuration
func DefaultConfig() *Config {
	return &Config{
		InteractiveMode: true,
		AutoCommit:      false,
		MaxChoices:      3,
		AIProvider:      "placeholder",
		AIModel:         "placeholder",
		AIBaseURL:       "http://localhost:11434",
		GitEditor:       "",
	}
}
