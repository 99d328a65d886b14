package report

import (
	"fmt"
	"strings"

	"github.com/yaklabco/leptomcp/pkg/config"
)

// CleanMessage is the text rendering of a report with no findings.
const CleanMessage = "✓ No issues found. Code looks good!"

// Text renders the report as plain severity-prefixed lines, one per
// finding, with the suggestion indented beneath when present. A clean
// report renders as CleanMessage.
func (r *Report) Text(ruleFormat config.RuleFormat) string {
	if len(r.Findings) == 0 {
		return CleanMessage + "\n"
	}

	var b strings.Builder
	for _, e := range r.Findings {
		rule := config.FormatRuleID(ruleFormat, e.RuleID, e.ruleName)
		fmt.Fprintf(&b, "%d:%d  %s  %s  (%s)\n", e.Line, e.Column, e.Severity, e.Message, rule)
		if e.SuggestedFix != "" {
			fmt.Fprintf(&b, "    Suggestion: %s\n", e.SuggestedFix)
		}
	}
	return b.String()
}
