// Package semantic applies format-specific rules against a parsed
// document tree. Rules are pure predicates: each is given the whole tree
// and returns at most one warning. Absence of a key means the rule does
// not fire; it is never an error.
package semantic

import (
	"strings"

	"github.com/garagon/yarara/internal/document"
	"github.com/garagon/yarara/internal/types"
)

// Rule is a single semantic check bound to one file format.
type Rule struct {
	ID          string
	Name        string
	Description string
	Format      document.Format
	Severity    types.Severity

	// Check inspects the tree and returns a warning message when the
	// rule fires, or "" when it does not. It must tolerate missing or
	// mistyped keys without panicking.
	Check func(doc *document.Document) string
}

// Registry holds rules keyed by file format. Evaluation dispatches on
// the document's format and runs every matching rule in registration
// order, never short-circuiting, so new rules compose without touching
// dispatch logic.
type Registry struct {
	rules []Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Builtin returns the registry of rules that ship with yarara.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(Rule{
		ID:          "YAML_API_VERSION_V1",
		Name:        "Outdated api_version",
		Description: "The top-level api_version key is set to v1. Newer API versions carry fixes and deprecation cleanups; pin the latest version your platform supports.",
		Format:      document.FormatYAML,
		Severity:    types.SeverityWarning,
		Check: func(doc *document.Document) string {
			m, ok := doc.TopMapping()
			if !ok {
				return ""
			}
			if v, ok := m["api_version"].(string); ok && v == "v1" {
				return "api_version is v1, consider upgrading to a newer version"
			}
			return ""
		},
	})
	r.Register(Rule{
		ID:          "JSON_DEBUG_ENABLED",
		Name:        "Debug mode enabled",
		Description: "The top-level debug key is true. Debug mode tends to leak internals (stack traces, verbose errors) and must be disabled in production.",
		Format:      document.FormatJSON,
		Severity:    types.SeverityWarning,
		Check: func(doc *document.Document) string {
			m, ok := doc.TopMapping()
			if !ok {
				return ""
			}
			if v, ok := m["debug"].(bool); ok && v {
				return "debug mode is enabled, disable it in production"
			}
			return ""
		},
	})
	return r
}

// Register appends a rule. Registration order is evaluation order.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Disable removes rules by ID (case-insensitive).
func (r *Registry) Disable(ids ...string) {
	if len(ids) == 0 {
		return
	}
	disabled := make(map[string]bool, len(ids))
	for _, id := range ids {
		disabled[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	var kept []Rule
	for _, rule := range r.rules {
		if !disabled[strings.ToUpper(rule.ID)] {
			kept = append(kept, rule)
		}
	}
	r.rules = kept
}

// Evaluate runs every rule registered for the document's format and
// returns their warnings in registration order.
func (r *Registry) Evaluate(doc *document.Document) []types.Warning {
	var warnings []types.Warning
	for _, rule := range r.rules {
		if rule.Format != doc.Format {
			continue
		}
		msg := rule.Check(doc)
		if msg == "" {
			continue
		}
		warnings = append(warnings, types.Warning{
			Message:  msg,
			Severity: rule.Severity,
			Source:   types.SourceRuleEngine,
		})
	}
	return warnings
}

// Rules returns the rules registered for one format, in order.
func (r *Registry) Rules(format document.Format) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.Format == format {
			out = append(out, rule)
		}
	}
	return out
}

// All returns every registered rule in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Find returns the rule with the given ID (case-insensitive).
func (r *Registry) Find(id string) (Rule, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, rule := range r.rules {
		if strings.ToUpper(rule.ID) == id {
			return rule, true
		}
	}
	return Rule{}, false
}

// Len reports the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}
