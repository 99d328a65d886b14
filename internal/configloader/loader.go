// Package configloader resolves the effective leptomcp configuration.
// Sources merge through koanf in precedence order: built-in defaults,
// a project config file found by upward search, LEPTOMCP_* environment
// variables, then CLI flags the user explicitly set.
package configloader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/yaklabco/leptomcp/pkg/config"
)

// envPrefix is the prefix stripped from configuration environment
// variables: LEPTOMCP_LOG_LEVEL becomes the log_level key.
const envPrefix = "LEPTOMCP_"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults
	// to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file path from --config. When set,
	// discovery is skipped and a missing file is an error.
	ExplicitPath string

	// IgnoreEnv skips the LEPTOMCP_* environment variables.
	IgnoreEnv bool

	// Flags are the command's parsed flags. Only flags the user
	// changed override file and environment values.
	Flags *pflag.FlagSet
}

// LoadResult contains the resolved configuration and its provenance.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Path is the config file that was loaded, empty when none.
	Path string

	// Warnings are non-fatal issues found during validation.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags explicitly set (opts.Flags)
//  2. Environment variables (LEPTOMCP_*)
//  3. Config file (explicit path or upward search)
//  4. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	k := koanf.New(".")

	defaults := config.NewConfig()
	if err := k.Load(confmap.Provider(map[string]any{
		"log_level":        defaults.LogLevel,
		"severity_default": defaults.SeverityDefault,
		"backups.enabled":  defaults.Backups.Enabled,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := opts.ExplicitPath
	if path == "" {
		found, err := FindProjectConfig(ctx, opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if !opts.IgnoreEnv {
		if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, envPrefix))
		}), nil); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			// Kebab-case flag names map to snake_case config keys.
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	// Unmarshal over NewConfig so CLI-level fields koanf never sees
	// keep their defaults.
	cfg := config.NewConfig()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}

	result := &LoadResult{Config: cfg, Path: path}

	normalizeRuleKeys(cfg, result)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	return result, nil
}

// normalizeRuleKeys rewrites rule map keys to canonical rule IDs so
// config files can use names like "println-in-component". Unknown keys
// are kept for validation to warn about.
func normalizeRuleKeys(cfg *config.Config, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	catalog := ruleCatalog()
	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string) // canonical ID -> original key

	// Sorted key order keeps the duplicate-key winner stable across runs.
	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]

		rule, found := catalog.Resolve(key)
		if !found {
			normalized[key] = ruleCfg
			continue
		}

		if prev, dup := seen[rule.ID]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using last value",
					prev, key, rule.ID))
		}
		seen[rule.ID] = key
		normalized[rule.ID] = ruleCfg
	}

	cfg.Rules = normalized
}
