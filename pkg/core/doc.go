// Package core defines the small shared vocabulary of rtllint.
//
// This package contains:
//   - Severity levels attached to rules and construct findings
//   - RuleInfo, the documentation DTO rendered by the CLI
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
