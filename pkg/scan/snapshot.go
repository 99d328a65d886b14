// Package scan segments component-framework source text into a flat,
// ordered sequence of analyzable units. It is a single-pass lexical
// scanner with delimiter-depth tracking, not a parser: nesting is
// approximated with an explicit open-delimiter stack, and input that
// violates delimiter balance degrades to an opaque tail instead of
// failing.
package scan

import "sort"

// Snapshot is the immutable result of scanning one source text.
type Snapshot struct {
	// Path is the origin of the content, empty for in-memory input.
	Path string

	// Content is the raw source bytes.
	Content []byte

	// Lines is the line offset table for position lookups.
	Lines []LineInfo

	// Units is the ordered sequence of scanned units.
	Units []Unit

	// Balanced is false when delimiters did not pair up: either a
	// mismatched closer degraded the remainder to an opaque unit, or
	// openers were left unclosed at end of input.
	Balanced bool

	// OpaqueFrom is the byte offset where structural inference stopped,
	// or -1 when the whole input was scanned structurally.
	OpaqueFrom int
}

// New scans source content into a Snapshot. It never fails: malformed
// input produces a snapshot with a trailing opaque unit.
func New(path string, content []byte) *Snapshot {
	snap := &Snapshot{
		Path:       path,
		Content:    content,
		Lines:      BuildLines(content),
		Balanced:   true,
		OpaqueFrom: -1,
	}

	if len(content) == 0 {
		snap.Units = []Unit{}
		return snap
	}

	sc := newScanner(content, 0, unitContext{})
	sc.run()

	snap.Units = sc.units
	if sc.opaqueFrom >= 0 {
		snap.Balanced = false
		snap.OpaqueFrom = sc.opaqueFrom
	} else if len(sc.delims) > 0 {
		// Openers left unclosed at end of input. Scanned units stand;
		// nothing degrades to opaque.
		snap.Balanced = false
	}

	// Nested attribute-value scans emit out of offset order; restore a
	// deterministic sequence.
	sort.SliceStable(snap.Units, func(i, j int) bool {
		a, b := snap.Units[i], snap.Units[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		return a.Kind < b.Kind
	})

	return snap
}

// UnitsOfKind returns the units matching the given kind, in order.
func (s *Snapshot) UnitsOfKind(kind Kind) []Unit {
	var out []Unit
	for _, u := range s.Units {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

// Slice returns the source text covered by span, clamped to content
// bounds.
func (s *Snapshot) Slice(span Span) string {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(s.Content) {
		end = len(s.Content)
	}
	if start >= end {
		return ""
	}
	return string(s.Content[start:end])
}
