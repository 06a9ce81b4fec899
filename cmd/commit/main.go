package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/commiterdev/commiter/internal/config"
	"github.com/commiterdev/commiter/internal/git"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var configErr *config.Error
		if errors.As(err, &configErr) && configErr.Hint != "" {
			_, _ = fmt.Fprintf(os.Stderr, "Hint: %s\n", configErr.Hint)
		}

		// A failed git commit exits with git's own code
		var cmdErr *git.CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
			os.Exit(cmdErr.ExitCode)
		}

		os.Exit(1)
	}
}

func run() error {
	return createRootCommand().Execute()
}
