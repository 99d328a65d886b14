package runner

import "github.com/yaklabco/leptomcp/pkg/lint"

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (e.g., due to concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FindingsTotal is the total number of findings across all files.
	FindingsTotal int

	// FindingsFixable is the number of findings that have auto-fixes.
	FindingsFixable int

	// FindingsBySeverity maps severity levels to counts.
	FindingsBySeverity map[string]int

	// FilesWithIssues is the number of files with at least one finding.
	FilesWithIssues int

	// FilesModified is the number of files that were modified by fixes.
	FilesModified int

	// FindingsFixed is the total number of issues fixed across all files.
	FindingsFixed int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any findings with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsBySeverity["error"] > 0
}

// HasIssues reports whether any findings were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		FindingsBySeverity: make(map[string]int),
	}
}

// Collect builds a Result from pre-computed outcomes in the given
// order. It backs single-input paths like stdin, where there is no
// discovery or worker pool but the reporting still wants a Result.
func Collect(outcomes []FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	return result
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}

	if outcome.Result.Written {
		r.Stats.FilesModified++
	}

	// Track total edits applied (issues fixed).
	r.Stats.FindingsFixed += outcome.Result.TotalEditsApplied

	if outcome.Result.Result != nil {
		findingCount := len(outcome.Result.Findings)
		r.Stats.FindingsTotal += findingCount
		r.Stats.FindingsFixable += outcome.Result.FixableCount()

		if findingCount > 0 {
			r.Stats.FilesWithIssues++
		}

		for _, finding := range outcome.Result.Findings {
			severity := string(finding.Severity)
			if severity == "" {
				severity = "warning"
			}
			r.Stats.FindingsBySeverity[severity]++
		}
	}
}
