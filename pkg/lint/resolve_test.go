package lint_test

import (
	"testing"

	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/scan"
)

const (
	testRuleID1 = "T001"
	testRuleID2 = "T002"
)

// newTestRule builds a minimal rule for resolution testing. The check
// never fires; resolution does not invoke it.
func newTestRule(id string, canFix bool) lint.Rule {
	return lint.Rule{
		ID:      id,
		Name:    id + "-name",
		Fixable: canFix,
		Check:   func(_ *scan.Unit, _ *scan.Snapshot) *lint.Match { return nil },
	}
}

func TestResolveRules_Empty(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog(nil)
	cfg := config.NewConfig()

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 0 {
		t.Errorf("expected 0 rules, got %d", len(resolved))
	}
}

func TestResolveRules_DefaultEnabled(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		newTestRule(testRuleID1, false),
		newTestRule(testRuleID2, false),
	})

	cfg := config.NewConfig()

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 2 {
		t.Errorf("expected 2 rules, got %d", len(resolved))
	}
}

func TestResolveRules_CatalogOrder(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		newTestRule(testRuleID1, false),
		newTestRule(testRuleID2, false),
	})

	resolved := lint.ResolveRules(catalog, nil)

	if len(resolved) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(resolved))
	}
	if resolved[0].Rule.ID != testRuleID1 || resolved[0].Index != 0 {
		t.Errorf("first = %s at %d", resolved[0].Rule.ID, resolved[0].Index)
	}
	if resolved[1].Rule.ID != testRuleID2 || resolved[1].Index != 1 {
		t.Errorf("second = %s at %d", resolved[1].Rule.ID, resolved[1].Index)
	}
}

func TestResolveRules_DisableViaConfig(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		newTestRule(testRuleID1, false),
		newTestRule(testRuleID2, false),
	})

	cfg := config.NewConfig()
	enabled := false
	cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: &enabled}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}

	if resolved[0].Rule.ID != testRuleID2 {
		t.Errorf("expected %s to be enabled, got %s", testRuleID2, resolved[0].Rule.ID)
	}
}

func TestResolveRules_EnableViaConfig(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, false)})

	cfg := config.NewConfig()
	// First disable via CLI, then enable via config.
	cfg.DisableRules = []string{testRuleID1}
	enabled := true
	cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: &enabled}

	resolved := lint.ResolveRules(catalog, cfg)

	// Config should override CLI disable.
	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}
}

func TestResolveRules_CLIEnable(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, false)})

	cfg := config.NewConfig()
	cfg.EnableRules = []string{testRuleID1}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 1 {
		t.Errorf("expected 1 rule, got %d", len(resolved))
	}
}

func TestResolveRules_CLIDisable(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		newTestRule(testRuleID1, false),
		newTestRule(testRuleID2, false),
	})

	cfg := config.NewConfig()
	cfg.DisableRules = []string{testRuleID1}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}

	if resolved[0].Rule.ID != testRuleID2 {
		t.Errorf("expected %s, got %s", testRuleID2, resolved[0].Rule.ID)
	}
}

func TestResolveRules_DisableByName(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		newTestRule(testRuleID1, false),
		newTestRule(testRuleID2, false),
	})

	cfg := config.NewConfig()
	cfg.DisableRules = []string{testRuleID1 + "-name"}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}

	if resolved[0].Rule.ID != testRuleID2 {
		t.Errorf("expected %s, got %s", testRuleID2, resolved[0].Rule.ID)
	}
}

func TestResolveRules_SeverityOverride(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, false)})

	cfg := config.NewConfig()
	severity := string(config.SeverityError)
	cfg.Rules[testRuleID1] = config.RuleConfig{Severity: &severity}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}

	if resolved[0].Severity != config.SeverityError {
		t.Errorf("expected error severity, got %v", resolved[0].Severity)
	}
}

func TestResolveRules_InvalidSeverityKeepsDefault(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, false)})

	cfg := config.NewConfig()
	severity := "fatal"
	cfg.Rules[testRuleID1] = config.RuleConfig{Severity: &severity}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}

	if resolved[0].Severity != config.SeverityWarning {
		t.Errorf("expected warning severity, got %v", resolved[0].Severity)
	}
}

func TestResolveRules_AutoFix(t *testing.T) {
	t.Parallel()

	t.Run("disabled when fix flag not set", func(t *testing.T) {
		t.Parallel()

		catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, true)})

		cfg := config.NewConfig()
		cfg.Fix = false

		resolved := lint.ResolveRules(catalog, cfg)

		if len(resolved) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(resolved))
		}

		if resolved[0].AutoFix {
			t.Error("AutoFix should be false when Fix flag is not set")
		}
	})

	t.Run("enabled when fix flag set", func(t *testing.T) {
		t.Parallel()

		catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, true)})

		cfg := config.NewConfig()
		cfg.Fix = true

		resolved := lint.ResolveRules(catalog, cfg)

		if len(resolved) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(resolved))
		}

		if !resolved[0].AutoFix {
			t.Error("AutoFix should be true when Fix flag is set")
		}
	})

	t.Run("disabled via config even with fix flag", func(t *testing.T) {
		t.Parallel()

		catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, true)})

		cfg := config.NewConfig()
		cfg.Fix = true
		autoFix := false
		cfg.Rules[testRuleID1] = config.RuleConfig{AutoFix: &autoFix}

		resolved := lint.ResolveRules(catalog, cfg)

		if len(resolved) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(resolved))
		}

		if resolved[0].AutoFix {
			t.Error("AutoFix should be false when disabled via config")
		}
	})

	t.Run("never enabled for an unfixable rule", func(t *testing.T) {
		t.Parallel()

		catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, false)})

		cfg := config.NewConfig()
		cfg.Fix = true
		autoFix := true
		cfg.Rules[testRuleID1] = config.RuleConfig{AutoFix: &autoFix}

		resolved := lint.ResolveRules(catalog, cfg)

		if len(resolved) != 1 {
			t.Fatalf("expected 1 rule, got %d", len(resolved))
		}

		if resolved[0].AutoFix {
			t.Error("AutoFix should stay false for a rule without edits")
		}
	})
}

func TestResolveRules_FixRulesFilter(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{
		newTestRule(testRuleID1, true),
		newTestRule(testRuleID2, true),
	})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.FixRules = []string{testRuleID1}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(resolved))
	}

	var rule1, rule2 *lint.ResolvedRule
	for idx := range resolved {
		if resolved[idx].Rule.ID == testRuleID1 {
			rule1 = &resolved[idx]
		} else if resolved[idx].Rule.ID == testRuleID2 {
			rule2 = &resolved[idx]
		}
	}

	if rule1 == nil || rule2 == nil {
		t.Fatal("expected both rules to be resolved")
	}

	if !rule1.AutoFix {
		t.Errorf("%s should have AutoFix enabled", testRuleID1)
	}
	if rule2.AutoFix {
		t.Errorf("%s should have AutoFix disabled due to FixRules filter", testRuleID2)
	}
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, true)})

	resolved := lint.ResolveRules(catalog, nil)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}

	// With nil config, defaults should apply.
	if resolved[0].Severity != config.SeverityWarning {
		t.Errorf("expected warning severity, got %v", resolved[0].Severity)
	}
	if !resolved[0].AutoFix {
		t.Error("expected AutoFix to follow Fixable with nil config")
	}
}

func TestResolvedRule_ConfigPresent(t *testing.T) {
	t.Parallel()

	catalog := lint.NewCatalog([]lint.Rule{newTestRule(testRuleID1, false)})

	cfg := config.NewConfig()
	severity := string(config.SeverityError)
	cfg.Rules[testRuleID1] = config.RuleConfig{Severity: &severity}

	resolved := lint.ResolveRules(catalog, cfg)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}

	if resolved[0].Config == nil {
		t.Fatal("expected Config to be set")
	}

	if resolved[0].Config.Severity == nil || *resolved[0].Config.Severity != severity {
		t.Error("expected the severity block to be carried through")
	}
}
