// Package report assembles deterministic analysis reports from raw
// findings: exact duplicates collapse, survivors sort into a stable
// presentation order, and a severity summary is attached.
package report

import (
	"sort"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
)

// Entry is one reported finding in wire order.
type Entry struct {
	RuleID       string `json:"rule_id"`
	Severity     string `json:"severity"`
	Line         int    `json:"line"`
	Column       int    `json:"column"`
	EndLine      int    `json:"end_line"`
	EndColumn    int    `json:"end_column"`
	Message      string `json:"message"`
	SuggestedFix string `json:"suggested_fix,omitempty"`

	// ruleName and catalogIndex support text rendering and tie-break
	// ordering; neither is part of the wire format.
	ruleName     string
	catalogIndex int
}

// Summary counts findings per severity.
type Summary struct {
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Report is an ordered list of findings plus the severity summary.
type Report struct {
	Findings []Entry `json:"findings"`
	Summary  Summary `json:"summary"`
}

// HasIssues reports whether any findings survived deduplication.
func (r *Report) HasIssues() bool {
	return len(r.Findings) > 0
}

// Build assembles a report from raw findings. Findings sharing a rule
// ID and a start location are exact duplicates; the first occurrence
// wins. Survivors sort by line, then column, then catalog position, so
// equal locations keep catalog order and repeated runs produce
// identical output.
func Build(findings []lint.Finding, catalog *lint.Catalog) *Report {
	report := &Report{Findings: make([]Entry, 0, len(findings))}

	type location struct {
		rule string
		line int
		col  int
	}
	seen := make(map[location]bool, len(findings))

	for i := range findings {
		f := &findings[i]

		key := location{rule: f.RuleID, line: f.StartLine, col: f.StartColumn}
		if seen[key] {
			continue
		}
		seen[key] = true

		severity := string(f.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}

		idx, ok := catalog.Index(f.RuleID)
		if !ok {
			// Rules unknown to the catalog sort after every known rule.
			idx = catalog.Len()
		}

		report.Findings = append(report.Findings, Entry{
			RuleID:       f.RuleID,
			Severity:     severity,
			Line:         f.StartLine,
			Column:       f.StartColumn,
			EndLine:      f.EndLine,
			EndColumn:    f.EndColumn,
			Message:      f.Message,
			SuggestedFix: f.Suggestion,
			ruleName:     f.RuleName,
			catalogIndex: idx,
		})

		switch severity {
		case string(config.SeverityError):
			report.Summary.Errors++
		default:
			report.Summary.Warnings++
		}
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.catalogIndex < b.catalogIndex
	})

	return report
}
