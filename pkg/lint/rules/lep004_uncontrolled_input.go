package rules

import (
	"fmt"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(UncontrolledInput)
}

// formElements are the tags whose value binding needs a paired input
// handler to stay controlled.
//
//nolint:gochecknoglobals // Closed tag set.
var formElements = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
}

// UncontrolledInput flags value-bound form elements with no event
// handler feeding edits back into the signal.
//
//nolint:gochecknoglobals // Rule definition.
var UncontrolledInput = lint.Rule{
	ID:          "LEP004",
	Name:        "uncontrolled-input",
	Description: "Value-bound form elements need an on:input handler updating the signal.",
	Kinds:       []scan.Kind{scan.KindElement},
	Severity:    config.SeverityWarning,
	Check:       checkUncontrolledInput,

	Rationale: `Binding value to a signal makes the element display the signal, but
nothing carries the user's keystrokes back. The DOM state and the signal
drift apart as soon as the user types, and the next signal write silently
discards their edits. A controlled element pairs the binding with an
on:input handler writing the target value back into the same signal.`,

	BadExample: `view! {
    <input type="text" prop:value=name />
}`,

	GoodExample: `view! {
    <input type="text"
        prop:value=name
        on:input=move |ev| set_name.set(event_target_value(&ev))
    />
}`,
}

func checkUncontrolledInput(u *scan.Unit, snap *scan.Snapshot) *lint.Match {
	if !formElements[u.Name] {
		return nil
	}

	bound := false
	for _, name := range []string{"value", "prop:value"} {
		if a, ok := u.AttrByName(name); ok && attrIsExpression(snap, a) {
			bound = true
			break
		}
	}
	if !bound {
		return nil
	}

	if _, ok := u.AttrByName("on:input"); ok {
		return nil
	}
	if _, ok := u.AttrByName("on:change"); ok {
		return nil
	}
	if u.HasAttrPrefix("bind:") {
		return nil
	}

	return &lint.Match{
		Message:    fmt.Sprintf("`<%s>` binds its value to a signal but has no on:input handler; user edits will not reach the signal", u.Name),
		Suggestion: "Add `on:input=move |ev| set_value.set(event_target_value(&ev))` updating the bound signal",
	}
}
