// Package config manages the persisted commiter configuration.
//
// The configuration is a single JSON document at a fixed per-user path.
// Unknown keys are ignored on read but preserved on rewrite, and every
// write goes through a temp-file-then-rename swap so an interrupted run
// never leaves a partially written file behind.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config holds the user preferences that tune commit message generation
// and the interactive flow.
type Config struct {
	InteractiveMode bool   `json:"interactive_mode" mapstructure:"interactive_mode"`
	AutoCommit      bool   `json:"auto_commit" mapstructure:"auto_commit"`
	MaxChoices      int    `json:"max_choices" mapstructure:"max_choices"`
	AIProvider      string `json:"ai_provider" mapstructure:"ai_provider"`
	AIModel         string `json:"ai_model" mapstructure:"ai_model"`
	AIBaseURL       string `json:"ai_base_url" mapstructure:"ai_base_url"`
	GitEditor       string `json:"git_editor" mapstructure:"git_editor"`
}

// Validate performs config-level validation
func (c *Config) Validate() error {
	if c.MaxChoices < 1 {
		return &Error{
			Message: fmt.Sprintf("max_choices must be at least 1, got %d", c.MaxChoices),
			Hint:    "run: commit config --max-choices 3",
		}
	}
	return nil
}

// Store reads and writes the configuration file through an injected
// filesystem. Unknown keys seen on load are carried in extra so a
// rewrite does not drop them.
type Store struct {
	fs    afero.Fs
	extra map[string]any
	path  string
}

// NewStore creates a configuration store for the given file path
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the configuration file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration file. A missing file or missing keys fall
// back to defaults; malformed JSON returns an *Error.
func (s *Store) Load() (*Config, error) {
	viperInstance := viper.New()
	viperInstance.SetFs(s.fs)
	viperInstance.SetConfigFile(s.path)
	viperInstance.SetConfigType("json")

	defaults := DefaultConfig()
	viperInstance.SetDefault(keyInteractiveMode, defaults.InteractiveMode)
	viperInstance.SetDefault(keyAutoCommit, defaults.AutoCommit)
	viperInstance.SetDefault(keyMaxChoices, defaults.MaxChoices)
	viperInstance.SetDefault(keyAIProvider, defaults.AIProvider)
	viperInstance.SetDefault(keyAIModel, defaults.AIModel)
	viperInstance.SetDefault(keyAIBaseURL, defaults.AIBaseURL)
	viperInstance.SetDefault(keyGitEditor, defaults.GitEditor)

	if err := viperInstance.ReadInConfig(); err != nil {
		if exists, statErr := afero.Exists(s.fs, s.path); statErr == nil && !exists {
			// No file yet: documented defaults apply
			return defaults, nil
		}
		return nil, &Error{
			Message: fmt.Sprintf("failed to read config file %s", s.path),
			Hint:    "fix or delete the file to start from defaults",
			Err:     err,
		}
	}

	var config Config
	if err := viperInstance.Unmarshal(&config); err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("failed to parse config file %s", s.path),
			Hint:    "fix or delete the file to start from defaults",
			Err:     err,
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s.extra = extraSettings(viperInstance.AllSettings())
	return &config, nil
}

// Save serializes the configuration and atomically replaces the file,
// creating parent directories if absent. Unknown keys from the last Load
// are merged back in.
func (s *Store) Save(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	settings := map[string]any{}
	for key, value := range s.extra {
		settings[key] = value
	}
	settings[keyInteractiveMode] = config.InteractiveMode
	settings[keyAutoCommit] = config.AutoCommit
	settings[keyMaxChoices] = config.MaxChoices
	settings[keyAIProvider] = config.AIProvider
	settings[keyAIModel] = config.AIModel
	settings[keyAIBaseURL] = config.AIBaseURL
	settings[keyGitEditor] = config.GitEditor

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return &Error{Message: "failed to serialize config", Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return &Error{
			Message: fmt.Sprintf("failed to create config directory %s", dir),
			Err:     err,
		}
	}

	// Write-then-rename keeps the swap atomic
	tmpPath := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o600); err != nil {
		return &Error{
			Message: fmt.Sprintf("failed to write config file %s", tmpPath),
			Err:     err,
		}
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return &Error{
			Message: fmt.Sprintf("failed to replace config file %s", s.path),
			Err:     err,
		}
	}

	return nil
}

// Update validates and applies a single key/value change, then saves.
func (s *Store) Update(key, value string) error {
	config, err := s.Load()
	if err != nil {
		return err
	}

	switch key {
	case keyInteractiveMode:
		parsed, parseErr := parseBool(key, value)
		if parseErr != nil {
			return parseErr
		}
		config.InteractiveMode = parsed
	case keyAutoCommit:
		parsed, parseErr := parseBool(key, value)
		if parseErr != nil {
			return parseErr
		}
		config.AutoCommit = parsed
	case keyMaxChoices:
		parsed, parseErr := strconv.Atoi(value)
		if parseErr != nil || parsed < 1 {
			return &Error{
				Message: fmt.Sprintf("invalid value for max_choices: %q", value),
				Hint:    "max_choices must be a positive integer",
			}
		}
		config.MaxChoices = parsed
	case keyAIProvider:
		config.AIProvider = value
	case keyAIModel:
		config.AIModel = value
	case keyAIBaseURL:
		config.AIBaseURL = value
	case keyGitEditor:
		config.GitEditor = value
	default:
		return &Error{
			Message: fmt.Sprintf("unknown configuration key: %s", key),
			Hint:    "valid keys: " + strings.Join(knownKeys, ", "),
		}
	}

	return s.Save(config)
}

// parseBool accepts the usual toggle spellings for boolean options
func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, &Error{
			Message: fmt.Sprintf("invalid value for %s: %q", key, value),
			Hint:    "valid values: true, false, 1, 0, yes, no, on, off",
		}
	}
}

// extraSettings returns the settings that are not recognized config keys
func extraSettings(all map[string]any) map[string]any {
	extra := map[string]any{}
	for key, value := range all {
		if !isKnownKey(key) {
			extra[key] = value
		}
	}
	if len(extra) == 0 {
		return nil
	}
	return extra
}

func isKnownKey(key string) bool {
	for _, known := range knownKeys {
		if key == known {
			return true
		}
	}
	return false
}

// Error is a configuration failure surfaced to the user with a
// corrective hint. It always means a non-zero exit with no retry.
type Error struct {
	Err     error
	Message string
	Hint    string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var _ error = (*Error)(nil)
