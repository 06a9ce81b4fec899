package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/commiterdev/commiter/internal/git"
)

// languageGroup maps file extensions to a human-readable language name.
// The mapping is a policy choice, not a contract; keep it in one place.
type languageGroup struct {
	name       string
	extensions []string
}

var languageGroups = []languageGroup{
	{name: "Python", extensions: []string{".py"}},
	{name: "JavaScript/TypeScript", extensions: []string{".js", ".ts", ".jsx", ".tsx"}},
	{name: "Go", extensions: []string{".go"}},
}

var configExtensions = []string{".json", ".yaml", ".yml", ".toml", ".ini"}

var docExtensions = []string{".md", ".txt", ".rst"}

// Heuristic is the default deterministic message provider. It never
// fails and never touches the filesystem or network.
type Heuristic struct{}

// Generate implements Provider. Zero staged files yield zero candidates.
func (Heuristic) Generate(files []git.ChangedFile, limit int) ([]string, error) {
	if len(files) == 0 || limit < 1 {
		return nil, nil
	}

	var candidates []string

	if len(files) == 1 {
		candidates = append(candidates, "Update "+files[0].Path)
	}

	for _, group := range languageGroups {
		matched := filterByExtension(files, group.extensions)
		switch {
		case len(matched) == 1:
			candidates = append(candidates, "Update "+matched[0].Path)
		case len(matched) > 1:
			candidates = append(candidates, fmt.Sprintf("Update %d %s files", len(matched), group.name))
		}
	}

	if len(filterByExtension(files, configExtensions)) > 0 {
		candidates = append(candidates, "Update configuration files")
	}
	if len(filterByExtension(files, docExtensions)) > 0 {
		candidates = append(candidates, "Update documentation")
	}

	if len(files) == 1 {
		candidates = append(candidates, "Modify "+files[0].Path)
	} else {
		candidates = append(candidates, fmt.Sprintf("Update %d files", len(files)))
	}

	return truncate(dedupe(candidates), limit), nil
}

func filterByExtension(files []git.ChangedFile, extensions []string) []git.ChangedFile {
	var matched []git.ChangedFile
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Path))
		for _, candidate := range extensions {
			if ext == candidate {
				matched = append(matched, file)
				break
			}
		}
	}
	return matched
}

// dedupe removes duplicate candidates preserving first-seen order
func dedupe(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	var unique []string
	for _, candidate := range candidates {
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		unique = append(unique, candidate)
	}
	return unique
}

func truncate(candidates []string, limit int) []string {
	if len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}
