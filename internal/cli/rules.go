package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/leptomcp/internal/logging"
	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Fixable     bool   `json:"fixable"`
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in analysis rules",
		Long: `List all built-in analysis rules with their IDs, descriptions,
default severity, and whether they support auto-fixing.

JSON output additionally carries each rule's rationale and its bad and
good code examples.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			catalog := rules.Catalog()

			// Handle JSON output format.
			if flags.format == formatJSON {
				return outputRulesJSON(catalog.Rules())
			}

			// Default to text output.
			logger := logging.NewInteractive()
			logger.Info("available rules")

			ruleFormat := config.RuleFormat(flags.ruleFormat)

			for _, rule := range catalog.Rules() {
				fixable := "-"
				if rule.Fixable {
					fixable = "yes"
				}

				logger.Info(config.FormatRuleID(ruleFormat, rule.ID, rule.Name),
					logging.FieldSeverity, rule.Severity,
					logging.FieldFixable, fixable,
					logging.FieldDescription, rule.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(catalogRules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(catalogRules))
	for _, rule := range catalogRules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Severity:    string(rule.Severity),
			Fixable:     rule.Fixable,
			Rationale:   rule.Rationale,
			BadExample:  rule.BadExample,
			GoodExample: rule.GoodExample,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
