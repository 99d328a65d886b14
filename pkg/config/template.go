package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Severity    Severity
	CanFix      bool
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts)
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# leptomcp configuration
# See: https://github.com/yaklabco/leptomcp

# Stderr log verbosity: debug, info, warn, or error
log_level: info

# Default severity for all rules: error or warning
# severity_default: warning

# File patterns to ignore during discovery (glob patterns)
# ignore:
#   - "target/**"
#   - "node_modules/**"

# Backup configuration for fix application
# backups:
#   enabled: true

# Rule-specific configuration
# rules:
#   LEP001:
#     enabled: true
#     severity: error
#   LEP005:
#     severity: error
`)

	if opts.Format == "json" {
		return templateToJSON()
	}

	return buf.Bytes(), nil
}

// generateFullTemplate creates a full template with all rules documented.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# leptomcp configuration - Full Template
# See: https://github.com/yaklabco/leptomcp
#
# This template includes all available rules with their default settings.
# Uncomment and modify settings as needed.

# Stderr log verbosity: debug, info, warn, or error
log_level: info

# Default severity for all rules: error or warning
severity_default: warning

# File patterns to ignore during discovery (glob patterns)
ignore:
  - "target/**"
  - "node_modules/**"
  - ".git/**"

# Backup configuration for fix application
backups:
  enabled: true

# Rule-specific configuration
rules:
`)

	rules := getRuleInfos()

	if len(opts.IncludeRules) > 0 {
		includeSet := make(map[string]bool)
		for _, id := range opts.IncludeRules {
			includeSet[id] = true
		}
		filtered := make([]RuleInfo, 0)
		for _, r := range rules {
			if includeSet[r.ID] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})

	for _, rule := range rules {
		buf.WriteString(fmt.Sprintf("\n  # %s: %s\n", rule.ID, rule.Name))
		buf.WriteString(fmt.Sprintf("  # %s\n", wrapComment(rule.Description, commentWrapWidth)))
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		buf.WriteString(fmt.Sprintf("  %s:\n", rule.ID))
		buf.WriteString("    enabled: true\n")
		buf.WriteString(fmt.Sprintf("    severity: %s\n", rule.Severity))
	}

	if opts.Format == "json" {
		return templateToJSON()
	}

	return buf.Bytes(), nil
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}

	// Fallback to a static list of known rules.
	return []RuleInfo{
		{ID: "LEP001", Name: "eager-signal-read", Severity: SeverityWarning, CanFix: true,
			Description: "Signal read in a view position without a reactive closure"},
		{ID: "LEP002", Name: "missing-move-capture", Severity: SeverityWarning,
			Description: "View closure references outer signals without a move capture"},
		{ID: "LEP003", Name: "resource-fetcher-signal-read", Severity: SeverityWarning,
			Description: "Resource fetcher reads a signal instead of receiving it as source input"},
		{ID: "LEP004", Name: "uncontrolled-input", Severity: SeverityWarning,
			Description: "Input element binds a value without a paired input event handler"},
		{ID: "LEP005", Name: "raw-html-injection", Severity: SeverityWarning,
			Description: "Unescaped string injected as HTML"},
		{ID: "LEP006", Name: "component-missing-macro", Severity: SeverityError,
			Description: "View-returning function is missing the component attribute macro"},
		{ID: "LEP007", Name: "deprecated-signal-api", Severity: SeverityWarning, CanFix: true,
			Description: "Deprecated signal constructor"},
		{ID: "LEP008", Name: "println-in-component", Severity: SeverityWarning,
			Description: "Console print macro inside component code"},
		{ID: "LEP009", Name: "server-fn-missing-error", Severity: SeverityWarning,
			Description: "Server function does not return Result with ServerFnError"},
		{ID: "LEP010", Name: "attr-value-binding", Severity: SeverityWarning, CanFix: true,
			Description: "Form element uses attribute value binding instead of property binding"},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON builds the JSON form of the template.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"log_level":        "info",
		"severity_default": "warning",
		"ignore":           []string{"target/**", "node_modules/**", ".git/**"},
		"backups": map[string]any{
			"enabled": true,
		},
	}

	rulesMap := make(map[string]any)
	for _, r := range getRuleInfos() {
		rulesMap[r.ID] = map[string]any{
			"enabled":  true,
			"severity": string(r.Severity),
		}
	}
	cfg["rules"] = rulesMap

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# leptomcp configuration
# See: https://github.com/yaklabco/leptomcp`
}
