package rules

import (
	"fmt"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(PrintlnInComponent)
}

// PrintlnInComponent flags console print macros in UI code.
//
//nolint:gochecknoglobals // Rule definition.
var PrintlnInComponent = lint.Rule{
	ID:          "LEP008",
	Name:        "println-in-component",
	Description: "Console print macros go nowhere in the browser; use leptos::logging.",
	Kinds:       []scan.Kind{scan.KindMacroCall},
	Severity:    config.SeverityWarning,
	Check:       checkPrintlnInComponent,

	Rationale: `println! writes to the process stdout. Compiled to WebAssembly there
is no stdout, so the output vanishes; on the server it bypasses whatever log
collection is in place. leptos::logging::log! lands in the browser console on
the client and in the standard log stream on the server, and the tracing
macros integrate with structured subscribers when those are set up.`,

	BadExample: `println!("count is {}", count.get_untracked());`,

	GoodExample: `leptos::logging::log!("count is {}", count.get_untracked());`,
}

func checkPrintlnInComponent(u *scan.Unit, _ *scan.Snapshot) *lint.Match {
	return &lint.Match{
		Message:    fmt.Sprintf("`%s!` output is lost in the browser; use `leptos::logging::log!` or tracing macros", u.Name),
		Suggestion: "Replace with `leptos::logging::log!` for console output on both targets",
	}
}
