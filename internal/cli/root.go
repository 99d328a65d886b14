// Package cli provides the Cobra command structure for leptomcp.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/leptomcp/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root leptomcp command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "leptomcp",
		Short: "Leptos documentation and code analysis over MCP",
		Long: `leptomcp serves Leptos framework documentation and a reactivity-aware
Rust analyzer to AI coding agents over the Model Context Protocol, and
exposes the same engine as a local command line tool.

The analyzer catches the classic Leptos mistakes: signals read outside a
reactive context, closures that forget to move their captures, resource
fetchers that silently untrack their inputs. Several rules carry safe
automatic fixes with conflict detection, dry-run diffs, and backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Flag parse failures are usage errors, exit code 64.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %s", ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newServeCommand(info))
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	applyHelpStyles(rootCmd, color, os.Stdout)

	return rootCmd
}
