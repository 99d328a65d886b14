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
	register(AttrValueBinding)
}

// AttrValueBinding flags signal-bound value attributes that set the
// HTML attribute instead of the DOM property.
//
//nolint:gochecknoglobals // Rule definition.
var AttrValueBinding = lint.Rule{
	ID:          "LEP010",
	Name:        "attr-value-binding",
	Description: "Bind form element values with prop:value, not the value attribute.",
	Kinds:       []scan.Kind{scan.KindAttributeBinding},
	Severity:    config.SeverityWarning,
	Fixable:     true,
	Check:       checkAttrValueBinding,

	Rationale: `The value attribute is only the element's initial value. Once the
user has typed, the browser stops reflecting attribute changes into the
field, so a signal bound through value= appears to stop working after first
input. prop:value writes the live DOM property and keeps the field in sync
with the signal for the element's whole life.`,

	BadExample: `view! {
    <input type="text" value=name />
}`,

	GoodExample: `view! {
    <input type="text" prop:value=name />
}`,
}

func checkAttrValueBinding(u *scan.Unit, snap *scan.Snapshot) *lint.Match {
	if u.Name != "value" {
		return nil
	}

	el := containing(snap, scan.KindElement, u.Span)
	if el == nil || !formElements[el.Name] {
		return nil
	}

	a, ok := el.AttrByName("value")
	if !ok || !attrIsExpression(snap, a) {
		return nil
	}

	return &lint.Match{
		Message:    fmt.Sprintf("`value=` on `<%s>` sets only the initial attribute; use `prop:value=` to keep the field in sync", el.Name),
		Suggestion: "Replace `value=` with `prop:value=`",
		Edits: []fix.TextEdit{
			fix.Replace(u.Span.Start, u.Span.Start+len("value"), "prop:value"),
		},
	}
}
