package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/fix"
	"github.com/yaklabco/leptomcp/pkg/fsutil"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

// DefaultMaxFixPasses bounds the fix loop. Edits skipped for conflicts
// in one pass become applicable in the next, so a handful of passes
// settles every realistic file; more than this points at rules undoing
// each other.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file
// through the safety pipeline.
type PipelineResult struct {
	// Result holds findings and edits from the FINAL analysis pass.
	*Result

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the content was changed.
	Modified bool

	// ModifiedContent is the new content after applying edits (nil if
	// not modified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil otherwise).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g. due to concurrent
	// modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// FixPasses is the number of fix passes performed.
	FixPasses int

	// TotalEditsApplied counts edits applied across all passes.
	TotalEditsApplied int
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "fixed (backup created)"
		}
		return "fixed"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.Result != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification
	// detection. When false, only mod time and size are checked.
	StrictRaceDetection bool

	// RevalidateAfterFix rescans the fixed content and refuses to keep
	// edits that broke delimiter balance in a file that scanned clean.
	RevalidateAfterFix bool

	// MaxFixPasses limits fix iterations. Zero means
	// DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Fix:                 false,
		DryRun:              false,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		RevalidateAfterFix:  true,
	}
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Engine runs the scan and the rule catalog.
	Engine *Engine
}

// NewPipeline creates a new safety pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Multi-pass fix loop (if fix mode enabled):
//     a. Analyze the current content.
//     b. If no edits, exit loop.
//     c. Apply edits in memory.
//     d. Repeat with modified content until stable or max passes.
//  3. Optionally rescan to validate the fixed content.
//  4. Generate diff (if dry-run mode).
//  5. Check for concurrent modifications.
//  6. Create backup (if enabled).
//  7. Write the modified content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	// Step 1: Read and hash the original file.
	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.process(ctx, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || result.Skipped || opts.DryRun {
		return result, nil
	}

	// Step 5: Check for concurrent modifications before writing.
	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	// Step 6: Create backup if enabled.
	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	// Step 7: Write the modified content atomically.
	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent processes in-memory content without file I/O. It
// supports multi-pass fixing just like ProcessFile.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.process(ctx, path, originalContent, cfg, opts)
}

// process runs the analyze-fix loop shared by file and in-memory
// processing.
func (p *Pipeline) process(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{
		Path: path,
	}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := originalContent
	var analysis *Result

	// Step 2: Multi-pass fix loop.
	for range maxPasses {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
		default:
		}

		var err error
		analysis, err = p.Engine.AnalyzeSource(ctx, path, content, cfg)
		if err != nil {
			return nil, err
		}

		if !opts.Fix || len(analysis.Edits) == 0 {
			break
		}

		// Apply edits in memory.
		content = fix.ApplyEdits(content, analysis.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(analysis.Edits)
		result.Modified = true
	}

	// Store the final analysis.
	result.Result = analysis
	result.ModifiedContent = content

	if !result.Modified {
		result.ModifiedContent = nil
		return result, nil
	}

	// Step 3: Optionally validate the fixed content. The scanner never
	// fails, so validation means delimiter balance: edits must not
	// break a file that scanned clean.
	if opts.RevalidateAfterFix {
		wasBalanced := scan.New(path, originalContent).Balanced
		if wasBalanced && !scan.New(path, content).Balanced {
			result.Skipped = true
			result.SkipReason = "fixes broke delimiter balance"
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	// Step 4: Generate diff for review.
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
	}

	return result, nil
}

// checkModified checks if a file changed since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	var modified bool
	var err error

	if strict {
		modified, err = fsutil.CheckModified(ctx, info)
	} else {
		modified, err = fsutil.CheckModifiedQuick(ctx, info)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error
// type. It uses errors.Is for robust detection rather than string
// matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from
// config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.Format == config.FormatDiff,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		RevalidateAfterFix:  true,
	}
}
