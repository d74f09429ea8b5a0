package lint

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleConfigFile is the on-disk shape of the rule configuration.
type ruleConfigFile struct {
	RuleSets any `yaml:"rule-sets"`
	Modules  any `yaml:"modules"`
}

// LoadRuleConfig reads and resolves a rule configuration file. A missing file
// yields an empty mapping; unreadable or malformed files yield an empty
// mapping with a warning. It never fails.
func LoadRuleConfig(path string, logger *slog.Logger) ModuleRules {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("rule config file not found, no rules enabled", slog.String("path", path))
		} else {
			logger.Warn("failed to read rule config file", slog.String("path", path), slog.Any("error", err))
		}
		return ModuleRules{}
	}

	raw, err := ParseRuleConfig(data)
	if err != nil {
		logger.Warn("invalid rule config file", slog.String("path", path), slog.Any("error", err))
		return ModuleRules{}
	}
	return Resolve(raw, logger.With(slog.String("path", path)))
}

// ParseRuleConfig decodes a YAML rule configuration document. Both top-level
// keys are optional; when present they must be mappings.
func ParseRuleConfig(data []byte) (RawRuleConfig, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawRuleConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return RawRuleConfig{}, nil
	}
	if _, ok := doc.(map[string]any); !ok {
		return RawRuleConfig{}, fmt.Errorf("config file must be a YAML mapping")
	}

	var file ruleConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RawRuleConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	sets, ok := asMapping(file.RuleSets)
	if !ok {
		return RawRuleConfig{}, fmt.Errorf("'rule-sets' and 'modules' must be mappings")
	}
	modules, ok := asMapping(file.Modules)
	if !ok {
		return RawRuleConfig{}, fmt.Errorf("'rule-sets' and 'modules' must be mappings")
	}
	return RawRuleConfig{RuleSets: sets, Modules: modules}, nil
}

func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
