package rules

import (
	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

//nolint:gochecknoinits // Rule registration.
func init() {
	register(RawHTMLInjection)
}

// RawHTMLInjection flags inner_html sinks, which bypass the
// framework's escaping.
//
//nolint:gochecknoglobals // Rule definition.
var RawHTMLInjection = lint.Rule{
	ID:          "LEP005",
	Name:        "raw-html-injection",
	Description: "inner_html injects unescaped markup and is a cross-site scripting sink.",
	Kinds:       []scan.Kind{scan.KindRawHTML},
	Severity:    config.SeverityWarning,
	Check:       checkRawHTMLInjection,

	Rationale: `Everything rendered through normal view nodes is escaped. inner_html is
the one escape hatch: the string goes into the document as markup, scripts and
all. Any value that ever touched user input or a remote service turns this
into stored or reflected XSS. If raw markup is genuinely needed, sanitize it
first and keep the sanitizer next to the sink.`,

	BadExample: `view! {
    <div inner_html=comment.body />
}`,

	GoodExample: `view! {
    <div inner_html=ammonia::clean(&comment.body) />
}`,
}

func checkRawHTMLInjection(_ *scan.Unit, _ *scan.Snapshot) *lint.Match {
	return &lint.Match{
		Message:    "`inner_html` injects markup without escaping; untrusted content here is a script injection vector",
		Suggestion: "Sanitize the string before injecting it, or render it as an escaped text node",
	}
}
