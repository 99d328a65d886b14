// Package lint implements the pattern catalog and analysis engine for
// leptomcp.
//
// A Rule is a plain data record: identity and documentation fields plus
// a function-valued matcher. The catalog is an immutable ordered
// sequence of rules built once at startup; the engine applies matchers
// to scanned units and keeps no state between calls, so concurrent
// analyses are safe.
package lint

import (
	"slices"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/fix"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

// CheckFunc inspects one scanned unit and reports a violation, or nil
// when the unit is clean. Matchers must be pure: no retained state, no
// mutation of the unit or snapshot.
type CheckFunc func(u *scan.Unit, snap *scan.Snapshot) *Match

// Match describes one violation produced by a rule's matcher.
type Match struct {
	// Message is the human-readable description of the issue.
	Message string

	// Suggestion is an optional fix hint surfaced in reports.
	Suggestion string

	// Span optionally narrows the reported range. When nil, the unit's
	// own span is reported.
	Span *scan.Span

	// Edits contains machine-applicable text edits realizing the
	// suggestion. Empty for rules that cannot fix.
	Edits []fix.TextEdit
}

// Rule is one pattern in the catalog. Behavior lives entirely in the
// Check function; everything else is identity and documentation.
type Rule struct {
	// ID is the stable catalog identifier (e.g. "LEP001").
	ID string

	// Name is the human-readable slug (e.g. "eager-signal-read").
	Name string

	// Description is a one-line summary of what the rule checks.
	Description string

	// Kinds filters which unit kinds the matcher sees. Empty means
	// every unit.
	Kinds []scan.Kind

	// Severity is the default severity for findings from this rule.
	Severity config.Severity

	// Fixable reports whether the matcher can produce edits.
	Fixable bool

	// Check is the matcher. Must be non-nil for catalog rules.
	Check CheckFunc

	// Rationale explains why the matched pattern is a problem.
	Rationale string

	// BadExample is a short source fragment that triggers the rule.
	BadExample string

	// GoodExample is the corrected counterpart of BadExample.
	GoodExample string
}

// AppliesTo reports whether the rule wants to see units of kind k.
func (r *Rule) AppliesTo(k scan.Kind) bool {
	if len(r.Kinds) == 0 {
		return true
	}
	return slices.Contains(r.Kinds, k)
}
