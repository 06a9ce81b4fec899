package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/commiterdev/commiter/internal/git"
)

// statusGlyph returns the colored one-character marker for a change kind
func statusGlyph(status git.Status) string {
	switch status {
	case git.StatusAdded:
		return color.GreenString("+")
	case git.StatusModified:
		return color.YellowString("~")
	case git.StatusDeleted:
		return color.RedString("-")
	case git.StatusRenamed, git.StatusCopied:
		return color.BlueString("→")
	default:
		return "?"
	}
}

// printStagedFiles lists the staged changes with status markers
func (a *App) printStagedFiles(files []git.ChangedFile) {
	color.New(color.FgGreen, color.Bold).Fprintln(a.out, "Staged changes:")
	for _, file := range files {
		if file.OldPath != "" {
			fmt.Fprintf(a.out, "  %s %s → %s\n", statusGlyph(file.Status), file.OldPath, file.Path)
			continue
		}
		fmt.Fprintf(a.out, "  %s %s\n", statusGlyph(file.Status), file.Path)
	}
	fmt.Fprintln(a.out)
}

// printCandidates renders the numbered candidate menu
func (a *App) printCandidates(candidates []string) {
	color.New(color.FgBlue, color.Bold).Fprintln(a.out, "Choose a commit message:")
	for i, candidate := range candidates {
		fmt.Fprintf(a.out, "  %s %s\n", color.CyanString("%d)", i+1), candidate)
	}
	fmt.Fprintln(a.out)
}

// printMessage shows the final message before confirmation
func (a *App) printMessage(message string) {
	fmt.Fprintln(a.out)
	color.New(color.Bold).Fprintln(a.out, "Commit message:")
	fmt.Fprintf(a.out, "  %s\n", message)
}
