package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/leptomcp/internal/ui/pretty"
)

// helpStyles holds the Lipgloss styles used by the help templates.
type helpStyles struct {
	heading lipgloss.Style
	command lipgloss.Style
	sub     lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{heading: plain, command: plain, sub: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		sub:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const helpUsageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ sub (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTopTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + helpUsageTemplate

// applyHelpStyles installs styled usage and help rendering on a command
// tree. Color follows the --color mode and the NO_COLOR convention.
func applyHelpStyles(cmd *cobra.Command, colorMode string, writer io.Writer) {
	styles := newHelpStyles(pretty.IsColorEnabled(colorMode, writer))

	funcs := template.FuncMap{
		"heading": styles.heading.Render,
		"command": styles.command.Render,
		"sub":     styles.sub.Render,
		"dim":     styles.dim.Render,
		"join":    strings.Join,
		"trim":    strings.TrimSpace,
		"rpad": func(s string, n int) string {
			if len(s) >= n {
				return s
			}
			return s + strings.Repeat(" ", n-len(s))
		},
		"flagUsages": func(fs *pflag.FlagSet) string {
			return styleFlagUsages(styles, fs.FlagUsages())
		},
	}

	render := func(w io.Writer, text string, c *cobra.Command) error {
		tmpl, err := template.New("help").Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		return tmpl.Execute(w, c)
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return render(c.OutOrStdout(), helpUsageTemplate, c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c.OutOrStdout(), helpTopTemplate, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// styleFlagUsages colors the flag column of pflag's usage block. Each
// line is "  -f, --flag type   description"; the column break is the
// first run of two or more spaces after the flags.
func styleFlagUsages(styles helpStyles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]

		flags, desc, found := splitFlagColumn(trimmed)
		if !found {
			continue
		}
		lines[i] = indent + styles.flag.Render(flags) + "   " + desc
	}
	return strings.Join(lines, "\n")
}

// splitFlagColumn separates the flag definition from its description.
func splitFlagColumn(line string) (flags, desc string, found bool) {
	runSince := -1
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] != ' ':
			if runSince >= 0 && i-runSince >= 2 {
				return strings.TrimRight(line[:runSince], " "), line[i:], true
			}
			runSince = -1
		case runSince < 0:
			runSince = i
		}
	}
	return "", "", false
}
