// Package generator produces ranked commit message candidates from the
// staged change set. The heuristic provider is the default; remote
// model-backed providers implement the same contract and are selected
// through configuration.
package generator

import (
	"github.com/commiterdev/commiter/internal/config"
	"github.com/commiterdev/commiter/internal/git"
)

// Provider generates up to limit candidate commit messages for the given
// staged files, ranked best first.
type Provider interface {
	Generate(files []git.ChangedFile, limit int) ([]string, error)
}

// DiffSource supplies the staged diff text that model-backed providers
// use as generation context.
type DiffSource interface {
	StagedDiff() (string, error)
}

// ForConfig selects the provider named by the configuration. Unrecognized
// providers (including the "placeholder" default) resolve to the heuristic.
func ForConfig(cfg *config.Config, diff DiffSource) Provider {
	switch cfg.AIProvider {
	case "ollama":
		return NewOllama(cfg.AIModel, cfg.AIBaseURL, diff)
	default:
		return Heuristic{}
	}
}
