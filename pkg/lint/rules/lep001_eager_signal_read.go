package rules

import (
	"fmt"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/fix"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(EagerSignalRead)
}

// EagerSignalRead flags signal reads evaluated once at render time
// instead of inside a reactive closure.
//
//nolint:gochecknoglobals // Rule definition.
var EagerSignalRead = lint.Rule{
	ID:          "LEP001",
	Name:        "eager-signal-read",
	Description: "Signal reads in a view must be wrapped in a closure to stay reactive.",
	Kinds:       []scan.Kind{scan.KindReactiveRead},
	Severity:    config.SeverityWarning,
	Fixable:     true,
	Check:       checkEagerSignalRead,

	Rationale: `A bare read such as count.get() inside view! runs exactly once, when
the view is built. The rendered output keeps that first value forever and never
updates when the signal changes. Wrapping the read in a closure hands the
framework something it can re-run, which is what makes the text reactive.`,

	BadExample: `view! {
    <p>"Count: "{count.get()}</p>
}`,

	GoodExample: `view! {
    <p>"Count: "{move || count.get()}</p>
}`,
}

func checkEagerSignalRead(u *scan.Unit, _ *scan.Snapshot) *lint.Match {
	if !u.InView || u.InClosure || untrackedRead(u) {
		return nil
	}

	read := u.Text
	if read == "" {
		read = fmt.Sprintf(".%s()", u.Name)
	}

	return &lint.Match{
		Message:    fmt.Sprintf("Reactive read `%s` in the view runs once at render and will not update when the signal changes", read),
		Suggestion: fmt.Sprintf("Wrap the read in a closure: `{move || %s}`", read),
		Edits: []fix.TextEdit{
			fix.Insert(u.Span.Start, "move || "),
		},
	}
}
