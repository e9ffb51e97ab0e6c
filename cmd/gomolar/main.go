// Package main is the entry point for the gomolar CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gomolar/internal/cli"
	"github.com/yaklabco/gomolar/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Invalid formulas have already been reported; only the exit code is left.
		if !errors.Is(err, cli.ErrInvalidFormula) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
