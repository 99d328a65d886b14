package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/fix"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

// Result holds the outcome of analyzing one source text.
type Result struct {
	// Snapshot is the scanned source.
	Snapshot *scan.Snapshot

	// Findings contains every issue found, in rule-then-unit order.
	// Use pkg/report to dedupe and sort for presentation.
	Findings []Finding

	// Edits contains validated, non-overlapping edits ready for
	// application. Populated only when fixing is enabled.
	Edits []fix.TextEdit

	// SkippedEdits contains edits dropped because they overlapped an
	// earlier edit. A later pass may still be able to apply them.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true when any edits were skipped.
	EditConflicts bool
}

// HasIssues reports whether any findings were produced.
func (r *Result) HasIssues() bool {
	return len(r.Findings) > 0
}

// HasFixes reports whether prepared edits are available.
func (r *Result) HasFixes() bool {
	return len(r.Edits) > 0
}

// FixableCount returns the number of findings carrying edits.
func (r *Result) FixableCount() int {
	count := 0
	for i := range r.Findings {
		if r.Findings[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine applies the rule catalog to scanned source. Analyze is a pure
// function of its inputs: the catalog is immutable and no state
// survives between calls, so one Engine may serve concurrent analyses.
type Engine struct {
	Catalog *Catalog
}

// NewEngine creates an Engine over the given catalog.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{Catalog: catalog}
}

// AnalyzeSource scans content and analyzes the snapshot in one step.
func (e *Engine) AnalyzeSource(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*Result, error) {
	return e.Analyze(ctx, scan.New(path, content), cfg)
}

// Analyze runs every enabled rule against every unit whose kind the
// rule filters for. A matcher produces at most one finding per unit.
// Cancellation is checked between rules. The returned error is non-nil
// only on cancellation; malformed input never fails, it just yields
// fewer units.
func (e *Engine) Analyze(
	ctx context.Context,
	snap *scan.Snapshot,
	cfg *config.Config,
) (*Result, error) {
	resolved := ResolveRules(e.Catalog, cfg)

	result := &Result{Snapshot: snap}

	// Collect edits across rules for conflict resolution.
	var allEdits []fix.TextEdit

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("analysis cancelled: %w", ctx.Err())
		default:
		}

		for ui := range snap.Units {
			u := &snap.Units[ui]
			if !rr.Rule.AppliesTo(u.Kind) {
				continue
			}

			m := rr.Rule.Check(u, snap)
			if m == nil {
				continue
			}

			span := u.Span
			if m.Span != nil {
				span = *m.Span
			}
			pos := snap.PositionFor(span)

			result.Findings = append(result.Findings, Finding{
				RuleID:      rr.Rule.ID,
				RuleName:    rr.Rule.Name,
				Severity:    rr.Severity,
				Message:     m.Message,
				FilePath:    snap.Path,
				StartLine:   pos.StartLine,
				StartColumn: pos.StartColumn,
				EndLine:     pos.EndLine,
				EndColumn:   pos.EndColumn,
				Suggestion:  m.Suggestion,
				Edits:       m.Edits,
			})

			if rr.AutoFix && len(m.Edits) > 0 {
				allEdits = append(allEdits, m.Edits...)
			}
		}
	}

	if len(allEdits) > 0 {
		accepted, skipped, _, err := fix.PrepareEdits(allEdits, len(snap.Content))
		if err != nil {
			// A matcher produced an out-of-range edit. Keep the
			// findings, drop all edits.
			result.Edits = nil
			result.SkippedEdits = nil
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}
