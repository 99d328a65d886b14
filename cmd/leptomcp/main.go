// Package main is the entry point for the leptomcp CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/leptomcp/internal/cli"
	"github.com/yaklabco/leptomcp/internal/logging"
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
	// An interrupt cancels the context so serve and watch loops can
	// shut down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Findings already rendered their report; don't log them again.
		if !errors.Is(err, cli.ErrIssuesFound) && !errors.Is(err, cli.ErrStrictWarnings) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeForError(err)
	}

	return 0
}
