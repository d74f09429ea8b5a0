// Package lint provides the rule catalog, rule configuration and violation
// reporting shared by the rtllint analysis engine and CLI.
//
// # Rule Catalog
//
// Every rule is a static Rule value registered in init(). Rules are
// identified by Name (for example "LATCH"); the numeric ID ("R101") is
// documentation only:
//
//	rule, ok := lint.GetByName("LATCH")
//	latchRules := lint.GetByGroup(lint.GroupLatch)
//
// Groups:
//   - latch: latch-inference prevention in always_comb
//   - xoptimism: case completeness and X-propagation guards
//   - always: procedural block discipline
//   - gatelevel: the structural, gate-level-only dialect
//
// # Rule Configuration
//
// Rule sets are named lists whose members are rule names or other rule-set
// names. Modules map to members of the same alphabet. Resolve expands the
// sets (tolerating cycles) into an immutable ModuleRules value:
//
//	rules := lint.LoadRuleConfig("lint_config.yaml", logger)
//	rules = rules.WithOverride(map[string][]string{"alu": {"LATCH"}})
//	enabled := rules.RuleSet("alu")
//
// # Reporting
//
// Violations are deduplicated on the full (module, rule, message, line)
// tuple by Collector, ordered by Sort and rendered by WriteReport.
package lint
