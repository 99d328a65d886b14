package rules

import (
	"strings"

	"github.com/yaklabco/leptomcp/pkg/scan"
)

// closureParams extracts the parameter names declared between the
// leading pipes of a closure text. Returns nil for `||` closures.
func closureParams(text string) map[string]bool {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "move"))

	open := strings.IndexByte(text, '|')
	if open < 0 {
		return nil
	}
	if strings.HasPrefix(text[open:], "||") {
		return nil
	}
	close := strings.IndexByte(text[open+1:], '|')
	if close < 0 {
		return nil
	}

	params := make(map[string]bool)
	for _, part := range strings.Split(text[open+1:open+1+close], ",") {
		name := strings.TrimSpace(part)
		name = strings.TrimPrefix(name, "mut ")
		if colon := strings.IndexByte(name, ':'); colon >= 0 {
			name = strings.TrimSpace(name[:colon])
		}
		if name != "" {
			params[name] = true
		}
	}
	return params
}

// attrIsExpression reports whether an attribute value is an expression
// rather than a quoted literal. The byte before the value span tells
// them apart: literals sit behind an opening quote.
func attrIsExpression(snap *scan.Snapshot, a scan.Attr) bool {
	if a.ValueSpan.IsEmpty() {
		return false
	}
	i := a.ValueSpan.Start - 1
	if i >= 0 && i < len(snap.Content) {
		return snap.Content[i] != '"'
	}
	return true
}

// untrackedRead reports whether a reactive read unit used an explicitly
// untracked access method.
func untrackedRead(u *scan.Unit) bool {
	return strings.HasSuffix(u.Name, "_untracked")
}

// containing returns the innermost unit of the given kind whose span
// fully covers target, or nil.
func containing(snap *scan.Snapshot, kind scan.Kind, target scan.Span) *scan.Unit {
	var best *scan.Unit
	for i := range snap.Units {
		u := &snap.Units[i]
		if u.Kind != kind {
			continue
		}
		if u.Span.Start <= target.Start && target.End <= u.Span.End {
			if best == nil || u.Span.Start >= best.Span.Start {
				best = u
			}
		}
	}
	return best
}
