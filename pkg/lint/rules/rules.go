// Package rules holds the built-in pattern catalog for leptomcp.
//
// Each rule lives in its own file as a data-driven lint.Rule definition
// registered from an init function. Rules are stateless; all context
// comes in through the check function parameters.
package rules

import (
	"slices"
	"strings"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
)

//nolint:gochecknoglobals // Populated from init functions in rule files.
var registered []lint.Rule

// register adds a rule definition to the built-in set. Call this from
// init functions in the per-rule files.
func register(r lint.Rule) {
	registered = append(registered, r)
}

// Catalog returns the built-in rule catalog ordered by rule ID, so the
// catalog (and with it the report tiebreak order) is identical no
// matter which order the rule files registered in.
func Catalog() *lint.Catalog {
	rules := make([]lint.Rule, len(registered))
	copy(rules, registered)
	slices.SortStableFunc(rules, func(a, b lint.Rule) int {
		return strings.Compare(a.ID, b.ID)
	})
	return lint.NewCatalog(rules)
}

//nolint:gochecknoinits // Wires rule metadata into config templates.
func init() {
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		catalog := Catalog()
		infos := make([]config.RuleInfo, 0, catalog.Len())
		for _, r := range catalog.Rules() {
			infos = append(infos, config.RuleInfo{
				ID:          r.ID,
				Name:        r.Name,
				Description: r.Description,
				Severity:    r.Severity,
				CanFix:      r.Fixable,
			})
		}
		return infos
	}
}
