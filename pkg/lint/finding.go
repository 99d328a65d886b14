package lint

import (
	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/fix"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

// Finding is a single issue located in analyzed source.
type Finding struct {
	// RuleID identifies the rule that produced this finding.
	RuleID string

	// RuleName is the rule's human-readable slug.
	RuleName string

	// Severity is the resolved severity for this finding.
	Severity config.Severity

	// Message describes the issue.
	Message string

	// FilePath is the analyzed file, empty for in-memory input.
	FilePath string

	// StartLine is the 1-based line where the issue starts.
	StartLine int

	// StartColumn is the 1-based byte column where the issue starts.
	StartColumn int

	// EndLine is the 1-based line where the issue ends.
	EndLine int

	// EndColumn is the 1-based byte column where the issue ends.
	EndColumn int

	// Suggestion is an optional human-readable fix hint.
	Suggestion string

	// Edits contains the text edits realizing the suggestion
	// (may be empty).
	Edits []fix.TextEdit
}

// HasFix reports whether machine-applicable edits accompany the finding.
func (f *Finding) HasFix() bool {
	return len(f.Edits) > 0
}

// SourcePosition returns the finding's range as a scan.SourcePosition.
func (f *Finding) SourcePosition() scan.SourcePosition {
	return scan.SourcePosition{
		StartLine:   f.StartLine,
		StartColumn: f.StartColumn,
		EndLine:     f.EndLine,
		EndColumn:   f.EndColumn,
	}
}
