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
	register(DeprecatedSignalAPI)
}

// modernNames maps the deprecated create_* constructors to their
// replacements. Every replacement takes the same arguments, so the
// rename is a safe mechanical fix.
//
//nolint:gochecknoglobals // Closed rename table.
var modernNames = map[string]string{
	"create_signal":         "signal",
	"create_rw_signal":      "RwSignal::new",
	"create_memo":           "Memo::new",
	"create_effect":         "Effect::new",
	"create_resource":       "Resource::new",
	"create_local_resource": "LocalResource::new",
}

// DeprecatedSignalAPI flags the pre-0.7 create_* constructor family.
//
//nolint:gochecknoglobals // Rule definition.
var DeprecatedSignalAPI = lint.Rule{
	ID:          "LEP007",
	Name:        "deprecated-signal-api",
	Description: "The create_* constructors are deprecated; use signal() and the ::new constructors.",
	Kinds:       []scan.Kind{scan.KindCall},
	Severity:    config.SeverityWarning,
	Fixable:     true,
	Check:       checkDeprecatedSignalAPI,

	Rationale: `The create_* free functions are the old reactive API. Their
replacements take the same arguments under the current ownership model:
signal() returns the (getter, setter) pair that create_signal did, and the
remaining constructors moved onto their types as ::new. The old names still
compile behind a deprecation shim but will not survive the next major
release.`,

	BadExample: `let (count, set_count) = create_signal(0);
let doubled = create_memo(move |_| count.get() * 2);`,

	GoodExample: `let (count, set_count) = signal(0);
let doubled = Memo::new(move |_| count.get() * 2);`,
}

func checkDeprecatedSignalAPI(u *scan.Unit, _ *scan.Snapshot) *lint.Match {
	modern, ok := modernNames[u.Name]
	if !ok {
		return nil
	}

	return &lint.Match{
		Message:    fmt.Sprintf("`%s` is deprecated; use `%s` instead", u.Name, modern),
		Suggestion: fmt.Sprintf("Replace `%s(` with `%s(`", u.Name, modern),
		Edits: []fix.TextEdit{
			fix.Replace(u.Span.Start, u.Span.End, modern),
		},
	}
}
