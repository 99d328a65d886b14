package rules

import (
	"fmt"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(MissingMoveCapture)
}

// MissingMoveCapture flags view closures that read an outer signal
// handle without taking ownership of it.
//
//nolint:gochecknoglobals // Rule definition.
var MissingMoveCapture = lint.Rule{
	ID:          "LEP002",
	Name:        "missing-move-capture",
	Description: "View closures reading outer signals should capture them with move.",
	Kinds:       []scan.Kind{scan.KindClosure},
	Severity:    config.SeverityWarning,
	Check:       checkMissingMoveCapture,

	Rationale: `A view fragment closure outlives the scope it was written in. Without
move it borrows its captured signal handles, and the borrow checker will reject
the code or the handle will dangle behind a reference-counted scope. Signal
handles are Copy, so moving them into the closure costs nothing and makes the
closure self-contained.`,

	BadExample: `view! {
    <p>{|| count.get()}</p>
}`,

	GoodExample: `view! {
    <p>{move || count.get()}</p>
}`,
}

func checkMissingMoveCapture(u *scan.Unit, snap *scan.Snapshot) *lint.Match {
	if !u.InView || u.HasMove {
		return nil
	}

	params := closureParams(u.Text)

	for i := range snap.Units {
		r := &snap.Units[i]
		if r.Kind != scan.KindReactiveRead {
			continue
		}
		if r.Span.Start < u.Span.Start || r.Span.End > u.Span.End {
			continue
		}
		// Reads owned by a nested move closure already have their
		// capture marker where it matters.
		if r.ClosureHasMove {
			continue
		}
		if r.Receiver != "" && params[r.Receiver] {
			continue
		}

		handle := r.Receiver
		if handle == "" {
			handle = "a signal"
		} else {
			handle = "`" + handle + "`"
		}
		return &lint.Match{
			Message:    fmt.Sprintf("Closure in the view reads %s without `move`; the handle is captured by reference", handle),
			Suggestion: "Add `move` before the closure parameters so it owns its captures",
		}
	}

	return nil
}
