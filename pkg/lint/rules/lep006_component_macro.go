package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(ComponentMissingMacro)
}

// ComponentMissingMacro flags view-returning functions that lack the
// component attribute.
//
//nolint:gochecknoglobals // Rule definition.
var ComponentMissingMacro = lint.Rule{
	ID:          "LEP006",
	Name:        "component-missing-macro",
	Description: "Functions returning impl IntoView must carry #[component].",
	Kinds:       []scan.Kind{scan.KindFnDecl},
	Severity:    config.SeverityError,
	Check:       checkComponentMissingMacro,

	Rationale: `The component attribute is what turns a plain function into a
component: it generates the props struct, wires reactive ownership, and
registers the function with the renderer. A bare function returning
impl IntoView compiles but composes wrong, with props passed positionally
and no reactive scope of its own.`,

	BadExample: `fn Counter() -> impl IntoView {
    view! { <p>"hi"</p> }
}`,

	GoodExample: `#[component]
fn Counter() -> impl IntoView {
    view! { <p>"hi"</p> }
}`,
}

func checkComponentMissingMacro(u *scan.Unit, _ *scan.Snapshot) *lint.Match {
	if u.HasComponentMacro || u.HasServerMacro {
		return nil
	}
	if !strings.HasPrefix(u.ReturnType, "impl ") || !strings.Contains(u.ReturnType, "IntoView") {
		return nil
	}

	return &lint.Match{
		Message:    fmt.Sprintf("`fn %s` returns `impl IntoView` but is missing #[component]", u.Name),
		Suggestion: "Add `#[component]` above the function",
	}
}
