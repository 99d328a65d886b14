package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/leptomcp/internal/configloader"
	"github.com/yaklabco/leptomcp/internal/logging"
	"github.com/yaklabco/leptomcp/internal/ui/pretty"
	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/langdetect"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/lint/rules"
	"github.com/yaklabco/leptomcp/pkg/report"
	"github.com/yaklabco/leptomcp/pkg/runner"
)

// stdinPath labels in-memory input in findings and diffs.
const stdinPath = "<stdin>"

type analyzeFlags struct {
	format     string
	diff       bool
	watch      bool
	strict     bool
	noContext  bool
	ruleFormat string
	fix        bool
	jobs       int
	noBackups  bool
	ignore     []string
	enable     []string
	disable    []string
	fixRules   []string
}

func newAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [paths...|-]",
		Short: "Analyze Rust files for Leptos reactivity issues",
		Long:  analyzeLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}

	addAnalyzeFlags(cmd, flags)

	return cmd
}

const analyzeLongDescription = `Analyze Rust source files for Leptos reactivity and correctness issues.

By default, analyzes all .rs files in the current directory and
subdirectories, skipping Cargo build output. Specify paths to analyze
specific files or directories, or pass - to read a snippet from stdin.

Examples:
  leptomcp analyze                     # Analyze current directory
  leptomcp analyze src/                # Analyze src directory
  leptomcp analyze app.rs              # Analyze single file
  leptomcp analyze --fix               # Apply safe fixes in place
  leptomcp analyze --fix --diff        # Show fixes as a diff, change nothing
  leptomcp analyze --format json       # Machine-readable report for CI
  leptomcp analyze --watch src/        # Re-analyze on file changes
  cat app.rs | leptomcp analyze -      # Analyze stdin`

func runAnalyze(cmd *cobra.Command, args []string, flags *analyzeFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format := config.OutputFormat(flags.format)
	if format != config.FormatText && format != config.FormatJSON {
		return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, flags.format)
	}
	if flags.diff && cmd.Flags().Changed("format") {
		return fmt.Errorf("%w: --diff replaces the report output; drop --format", ErrUsage)
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Flags:        cmd.Flags(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.Path != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loadResult.Path)
	}

	// --debug wins over the configured level.
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}

	// Command-line-only settings never pass through the loader.
	cfg.Fix = flags.fix
	cfg.Strict = flags.strict
	cfg.Jobs = flags.jobs
	cfg.Format = format
	cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
	cfg.NoBackups = flags.noBackups
	if flags.diff {
		// A diff is a dry run: plan fixes, write nothing.
		cfg.Format = config.FormatDiff
		cfg.Fix = true
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	engine := lint.NewEngine(rules.Catalog())
	pipeline := lint.NewPipeline(engine)

	for _, arg := range args {
		if arg != "-" {
			continue
		}
		if len(args) > 1 {
			return fmt.Errorf("%w: - must be the only path", ErrUsage)
		}
		if flags.watch {
			return fmt.Errorf("%w: --watch does not apply to stdin", ErrUsage)
		}
		if flags.fix && !flags.diff {
			return fmt.Errorf("%w: cannot fix stdin in place; use --diff to preview edits", ErrUsage)
		}
		return runAnalyzeStdin(ctx, cmd, pipeline, engine.Catalog, cfg, styles, flags)
	}

	lintRunner := runner.New(pipeline)
	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting analysis",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldFix, cfg.Fix,
		logging.FieldJobs, cfg.Jobs,
	)

	if flags.watch {
		return watchAndRun(ctx, cmd, lintRunner, runOpts, engine.Catalog, styles, flags)
	}

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("analysis run failed: %w", err)
	}

	if err := renderResult(cmd.OutOrStdout(), styles, result, engine.Catalog, cfg, flags); err != nil {
		return err
	}

	return exitErrorFromResult(result, cfg.Strict)
}

// runAnalyzeStdin analyzes one source read from standard input.
func runAnalyzeStdin(
	ctx context.Context,
	cmd *cobra.Command,
	pipeline *lint.Pipeline,
	catalog *lint.Catalog,
	cfg *config.Config,
	styles *pretty.Styles,
	flags *analyzeFlags,
) error {
	logger := logging.Default()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: refusing to read source from an interactive terminal; pipe input or pass file paths", ErrUsage)
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("%w: read stdin: %w", ErrIO, err)
	}

	if len(content) > 0 && !langdetect.IsRust(content) {
		logger.Warn("input does not look like Rust source",
			logging.FieldLanguage, langdetect.Detect(content))
	}

	pr, err := pipeline.ProcessContent(ctx, stdinPath, content, cfg, lint.PipelineOptionsFromConfig(cfg))
	if err != nil {
		return fmt.Errorf("analyze stdin: %w", err)
	}

	result := runner.Collect([]runner.FileOutcome{{Path: stdinPath, Result: pr}})

	if err := renderResult(cmd.OutOrStdout(), styles, result, catalog, cfg, flags); err != nil {
		return err
	}

	return exitErrorFromResult(result, cfg.Strict)
}

// renderResult writes the run result in the configured output format.
func renderResult(
	w io.Writer,
	styles *pretty.Styles,
	result *runner.Result,
	catalog *lint.Catalog,
	cfg *config.Config,
	flags *analyzeFlags,
) error {
	switch cfg.Format {
	case config.FormatJSON:
		return renderJSON(w, result, catalog)
	case config.FormatDiff:
		return renderDiffs(w, styles, result)
	default:
		return renderText(w, styles, result, cfg.RuleFormat, !flags.noContext)
	}
}

// renderText writes findings grouped by file with a closing summary.
func renderText(
	w io.Writer,
	styles *pretty.Styles,
	result *runner.Result,
	ruleFormat config.RuleFormat,
	showContext bool,
) error {
	bw := bufio.NewWriter(w)

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(bw, styles.Success.Render("No files to check."))
		return bw.Flush()
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(bw, "%s: %s\n",
				styles.FilePath.Render(file.Path),
				styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || file.Result.Result == nil {
			continue
		}

		findings := file.Result.Findings
		if len(findings) == 0 {
			continue
		}

		fmt.Fprintln(bw, styles.FormatFileHeader(file.Path, len(findings)))

		for i := range findings {
			finding := &findings[i]

			var sourceLine string
			if showContext && file.Result.Snapshot != nil {
				sourceLine = string(file.Result.Snapshot.LineContent(finding.StartLine))
			}

			fmt.Fprint(bw, styles.FormatFinding(finding, showContext, sourceLine, ruleFormat))
		}

		fmt.Fprintln(bw)
	}

	fmt.Fprint(bw, styles.FormatSummaryOneLine(result.Stats))

	return bw.Flush()
}

// jsonFile is the per-file block of the JSON report.
type jsonFile struct {
	Path     string         `json:"path"`
	Error    string         `json:"error,omitempty"`
	Findings []report.Entry `json:"findings"`
	Summary  report.Summary `json:"summary"`
}

// jsonRun aggregates per-file reports with run-level statistics.
type jsonRun struct {
	Files   []jsonFile     `json:"files"`
	Summary jsonRunSummary `json:"summary"`
}

type jsonRunSummary struct {
	FilesProcessed  int `json:"files_processed"`
	FilesWithIssues int `json:"files_with_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fixed           int `json:"fixed,omitempty"`
}

// renderJSON writes the canonical per-file reports as one JSON document.
func renderJSON(w io.Writer, result *runner.Result, catalog *lint.Catalog) error {
	out := jsonRun{Files: make([]jsonFile, 0, len(result.Files))}

	for _, file := range result.Files {
		entry := jsonFile{Path: file.Path}

		if file.Error != nil {
			entry.Error = file.Error.Error()
			entry.Findings = []report.Entry{}
		} else if file.Result != nil && file.Result.Result != nil {
			rep := report.Build(file.Result.Findings, catalog)
			entry.Findings = rep.Findings
			entry.Summary = rep.Summary
		}

		out.Files = append(out.Files, entry)
	}

	out.Summary = jsonRunSummary{
		FilesProcessed:  result.Stats.FilesProcessed,
		FilesWithIssues: result.Stats.FilesWithIssues,
		Errors:          result.Stats.FindingsBySeverity[string(config.SeverityError)],
		Warnings:        result.Stats.FindingsBySeverity[string(config.SeverityWarning)],
		Fixed:           result.Stats.FindingsFixed,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// renderDiffs writes planned fixes as unified diffs without applying them.
func renderDiffs(w io.Writer, styles *pretty.Styles, result *runner.Result) error {
	bw := bufio.NewWriter(w)

	files, additions, deletions := 0, 0, 0
	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || file.Result.Diff == nil {
			continue
		}

		fmt.Fprint(bw, styles.FormatDiff(file.Result.Diff))
		files++
		additions += file.Result.Diff.Additions
		deletions += file.Result.Diff.Deletions
	}

	if files == 0 {
		fmt.Fprintln(bw, styles.Success.Render("No fixes to apply."))
		return bw.Flush()
	}

	fmt.Fprint(bw, styles.FormatDiffSummary(files, additions, deletions))

	return bw.Flush()
}

func addAnalyzeFlags(cmd *cobra.Command, flags *analyzeFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show fixes as a unified diff without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "watch for file changes and re-analyze")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rule IDs")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
}
