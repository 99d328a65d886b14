package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/leptomcp/internal/cli"
)

func TestAnalyzeCommand_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	analyzeCmd, _, err := cmd.Find([]string{"analyze"})
	if err != nil {
		t.Fatalf("analyze command not found: %v", err)
	}

	flag := analyzeCmd.Flags().Lookup("rule-format")
	assert.NotNil(t, flag, "rule-format flag should exist")
	assert.Equal(t, "name", flag.DefValue, "default value should be 'name'")
}

func TestAnalyzeCommand_DiffFlag(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	analyzeCmd, _, err := cmd.Find([]string{"analyze"})
	if err != nil {
		t.Fatalf("analyze command not found: %v", err)
	}

	diffFlag := analyzeCmd.Flags().Lookup("diff")
	assert.NotNil(t, diffFlag, "diff flag should exist")
	assert.Equal(t, "false", diffFlag.DefValue, "diff should default to off")

	// The report format flag covers text and json; diffs have their own flag.
	formatFlag := analyzeCmd.Flags().Lookup("format")
	assert.NotNil(t, formatFlag, "format flag should exist")
	assert.Equal(t, "text", formatFlag.DefValue, "default format should be 'text'")
	assert.Contains(t, formatFlag.Usage, "json", "format flag help should include 'json'")
}
