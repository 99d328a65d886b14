package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/leptomcp/internal/docs"
)

func newDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Browse the embedded Leptos documentation",
		Long: `Browse the Leptos documentation registry locally.

The same registry backs the MCP list-sections and get-documentation
tools; section lookup accepts a path, a title, or any substring of
either, case-insensitively.`,
	}

	cmd.AddCommand(newDocsListCommand())
	cmd.AddCommand(newDocsShowCommand())
	cmd.AddCommand(newDocsOutlineCommand())

	return cmd
}

func newDocsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all documentation sections",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), docs.List())
		},
	}
}

func newDocsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <section>",
		Short: "Print a documentation section as markdown",
		Long: `Print a documentation section as markdown.

The section argument matches the way the get-documentation MCP tool
does: an unknown section prints the not-found hint rather than failing.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), docs.Render(args[0]))
		},
	}
}

func newDocsOutlineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <section>",
		Short: "Print the heading outline of a documentation section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, ok := docs.Find(args[0])
			if !ok {
				return fmt.Errorf("%w: section %q not found; run 'leptomcp docs list'", ErrUsage, args[0])
			}

			for _, heading := range docs.Outline(section) {
				indent := strings.Repeat("  ", heading.Level-1)
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", indent, heading.Text)
			}

			return nil
		},
	}
}
