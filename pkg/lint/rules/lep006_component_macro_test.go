package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/leptomcp/pkg/config"
)

func TestComponentMissingMacro(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantFindings int
	}{
		{
			name:         "bare view function",
			input:        "fn Counter() -> impl IntoView {\n    view! { <p>\"hi\"</p> }\n}",
			wantFindings: 1,
		},
		{
			name:         "annotated component",
			input:        "#[component]\nfn Counter() -> impl IntoView {\n    view! { <p>\"hi\"</p> }\n}",
			wantFindings: 0,
		},
		{
			name:         "server function returning view",
			input:        "#[server]\nasync fn Render() -> impl IntoView { todo() }",
			wantFindings: 0,
		},
		{
			name:         "function returning plain type",
			input:        "fn total(items: &[Item]) -> usize { items.len() }",
			wantFindings: 0,
		},
		{
			name:         "generic view function without macro",
			input:        "fn List<T: Clone>(items: Vec<T>) -> impl IntoView { todo() }",
			wantFindings: 1,
		},
		{
			name:         "view function with where clause",
			input:        "fn Wrap<F>(f: F) -> impl IntoView where F: Fn() { todo() }",
			wantFindings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := findingsFor(analyze(t, tt.input), "LEP006")
			assert.Len(t, findings, tt.wantFindings)
		})
	}
}

func TestComponentMissingMacroIsError(t *testing.T) {
	findings := findingsFor(analyze(t, "fn App() -> impl IntoView { todo() }"), "LEP006")
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, config.SeverityError, f.Severity)
	assert.Contains(t, f.Message, "`fn App`")
	assert.Contains(t, f.Suggestion, "#[component]")
	assert.Equal(t, 1, f.StartLine)
	assert.Equal(t, 1, f.StartColumn)
}
