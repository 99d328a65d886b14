package lint

import "github.com/yaklabco/leptomcp/pkg/config"

// ResolvedRule pairs a catalog rule with its effective configuration.
type ResolvedRule struct {
	// Rule is the catalog entry.
	Rule Rule

	// Index is the rule's catalog position.
	Index int

	// Enabled indicates whether the rule should run.
	Enabled bool

	// Severity is the effective severity for findings from this rule.
	Severity config.Severity

	// AutoFix indicates whether edits from this rule get applied.
	AutoFix bool

	// Config is the rule-specific configuration block (may be nil).
	Config *config.RuleConfig
}

// ResolveRules applies configuration to the catalog and returns the
// enabled rules in catalog order.
func ResolveRules(catalog *Catalog, cfg *config.Config) []ResolvedRule {
	resolved := make([]ResolvedRule, 0, catalog.Len())

	for i := range catalog.rules {
		rr := resolveRule(&catalog.rules[i], i, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the effective configuration for a single rule.
func resolveRule(rule *Rule, idx int, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     *rule,
		Index:    idx,
		Enabled:  true,
		Severity: rule.Severity,
		AutoFix:  rule.Fixable,
		Config:   nil,
	}
	if rr.Severity == "" {
		rr.Severity = config.SeverityWarning
	}

	if cfg == nil {
		return rr
	}

	// Explicit enable/disable from the command line.
	for _, key := range cfg.EnableRules {
		if matchesRule(rule, key) {
			rr.Enabled = true
			break
		}
	}
	for _, key := range cfg.DisableRules {
		if matchesRule(rule, key) {
			rr.Enabled = false
			break
		}
	}

	// Per-rule configuration block.
	if ruleCfg, ok := cfg.Rules[rule.ID]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			// Severity is a closed set; an unknown value keeps the default.
			if sev := config.Severity(*ruleCfg.Severity); sev.IsValid() {
				rr.Severity = sev
			}
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.Fixable
		}
	}

	// Restrict fixing to the --fix-rules list when given.
	if len(cfg.FixRules) > 0 {
		rr.AutoFix = false
		for _, key := range cfg.FixRules {
			if matchesRule(rule, key) && rule.Fixable {
				rr.AutoFix = true
				break
			}
		}
	}

	// No fixing at all unless --fix was requested.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

// matchesRule reports whether key names the rule by ID or slug.
func matchesRule(rule *Rule, key string) bool {
	return key == rule.ID || key == rule.Name
}
