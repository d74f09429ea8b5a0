package lint

import (
	"fmt"
	"log/slog"
	"sort"
)

// RuleSet is the set of rule names enabled for one module.
type RuleSet map[string]struct{}

// NewRuleSet builds a RuleSet from rule names.
func NewRuleSet(names ...string) RuleSet {
	rs := make(RuleSet, len(names))
	for _, n := range names {
		rs[n] = struct{}{}
	}
	return rs
}

// Has reports whether the rule is enabled. A nil set enables nothing.
func (rs RuleSet) Has(name string) bool {
	_, ok := rs[name]
	return ok
}

// ModuleRules maps module names to their enabled rule names. The zero value
// is an empty mapping. Values are never mutated after construction; the
// With* methods return new values.
type ModuleRules struct {
	modules map[string][]string
}

// NewModuleRules copies m, sorting and de-duplicating every rule list.
func NewModuleRules(m map[string][]string) ModuleRules {
	out := make(map[string][]string, len(m))
	for mod, rules := range m {
		out[mod] = normalize(rules)
	}
	return ModuleRules{modules: out}
}

// Rules returns the sorted rule names enabled for module.
func (r ModuleRules) Rules(module string) []string {
	rules, ok := r.modules[module]
	if !ok {
		return nil
	}
	return append([]string(nil), rules...)
}

// RuleSet returns the enabled rules for module as a set.
func (r ModuleRules) RuleSet(module string) RuleSet {
	return NewRuleSet(r.modules[module]...)
}

// Has reports whether module has an entry.
func (r ModuleRules) Has(module string) bool {
	_, ok := r.modules[module]
	return ok
}

// Modules returns the configured module names in sorted order.
func (r ModuleRules) Modules() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of configured modules.
func (r ModuleRules) Len() int { return len(r.modules) }

// Map returns a copy of the mapping.
func (r ModuleRules) Map() map[string][]string {
	out := make(map[string][]string, len(r.modules))
	for mod, rules := range r.modules {
		out[mod] = append([]string(nil), rules...)
	}
	return out
}

// WithOverride returns a copy where every module named in override has its
// rule list replaced, not merged.
func (r ModuleRules) WithOverride(override map[string][]string) ModuleRules {
	if len(override) == 0 {
		return r
	}
	out := r.Map()
	for mod, rules := range override {
		out[mod] = normalize(rules)
	}
	return ModuleRules{modules: out}
}

// Without returns a copy with the named rules removed from every module.
func (r ModuleRules) Without(names ...string) ModuleRules {
	if len(names) == 0 {
		return r
	}
	drop := NewRuleSet(names...)
	out := make(map[string][]string, len(r.modules))
	for mod, rules := range r.modules {
		kept := make([]string, 0, len(rules))
		for _, rule := range rules {
			if !drop.Has(rule) {
				kept = append(kept, rule)
			}
		}
		out[mod] = kept
	}
	return ModuleRules{modules: out}
}

func normalize(rules []string) []string {
	seen := make(map[string]bool, len(rules))
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if !seen[rule] {
			seen[rule] = true
			out = append(out, rule)
		}
	}
	sort.Strings(out)
	return out
}

// =============================================================================
// Resolution
// =============================================================================

// RawRuleConfig is the undecoded rule configuration: rule-set name to member
// list, and module name to member list or single member. Values keep the
// shapes produced by a YAML or JSON decoder so malformed entries can be
// reported instead of rejected.
type RawRuleConfig struct {
	RuleSets map[string]any
	Modules  map[string]any
}

// Resolve expands rule sets into a ModuleRules value. Rule-set references are
// followed recursively; a set already visited in the current expansion
// contributes nothing, so cycles terminate. Malformed shapes are logged as
// warnings and skipped.
func Resolve(raw RawRuleConfig, logger *slog.Logger) ModuleRules {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	res := &resolver{sets: raw.RuleSets, logger: logger}

	out := make(map[string][]string, len(raw.Modules))
	for module, value := range raw.Modules {
		var members []any
		switch v := value.(type) {
		case string:
			members = []any{v}
		case []any:
			members = v
		case []string:
			for _, s := range v {
				members = append(members, s)
			}
		default:
			logger.Warn("module should map to a list or a single string, skipping",
				slog.String("module", module),
				slog.String("type", fmt.Sprintf("%T", value)))
			continue
		}

		acc := make(map[string]bool)
		for _, member := range members {
			res.expandMember(member, acc, make(map[string]bool), module)
		}
		out[module] = setToSorted(acc)
	}

	rules := ModuleRules{modules: out}
	for _, mod := range rules.Modules() {
		for _, name := range rules.modules[mod] {
			if !IsKnown(name) {
				logger.Warn("unknown rule name in configuration",
					slog.String("module", mod),
					slog.String("rule", name))
			}
		}
	}
	return rules
}

type resolver struct {
	sets   map[string]any
	logger *slog.Logger
}

// expandMember adds the rules a member contributes to acc. seen tracks the
// rule sets entered during this expansion.
func (r *resolver) expandMember(member any, acc, seen map[string]bool, context string) {
	name, ok := member.(string)
	if !ok {
		r.logger.Warn("rule member is not a string, skipping",
			slog.String("in", context),
			slog.String("type", fmt.Sprintf("%T", member)))
		return
	}
	if _, isSet := r.sets[name]; !isSet {
		acc[name] = true
		return
	}
	r.expandSet(name, acc, seen)
}

func (r *resolver) expandSet(name string, acc, seen map[string]bool) {
	if seen[name] {
		return
	}
	seen[name] = true

	var members []any
	switch v := r.sets[name].(type) {
	case []any:
		members = v
	case []string:
		for _, s := range v {
			members = append(members, s)
		}
	default:
		r.logger.Warn("rule set is not a list, skipping", slog.String("rule_set", name))
		return
	}

	for _, member := range members {
		r.expandMember(member, acc, seen, name)
	}
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
