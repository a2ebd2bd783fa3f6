// Package matcher classifies free text by case-insensitive substring triggers.
// Rules are evaluated in explicit priority order, so which rule wins for a
// given input never depends on how a slice happened to be declared.
package matcher

import (
	"sort"
	"strings"

	"github.com/cloudflex/assistant/internal/knowledge"
)

// Rule maps trigger substrings to a response.
type Rule struct {
	Name     string
	Priority int
	Triggers []string
	Respond  func(*knowledge.Tables) string
}

// RuleSet is an immutable, ranked list of rules. Build one with NewRuleSet.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet returns the rules ordered by Priority (lower first), then by
// Name. Triggers are lower-cased and empty triggers dropped.
func NewRuleSet(rules ...Rule) RuleSet {
	ordered := make([]Rule, 0, len(rules))
	for _, r := range rules {
		triggers := make([]string, 0, len(r.Triggers))
		for _, t := range r.Triggers {
			t = strings.ToLower(t)
			if t != "" {
				triggers = append(triggers, t)
			}
		}
		r.Triggers = triggers
		ordered = append(ordered, r)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].Name < ordered[j].Name
	})
	return RuleSet{rules: ordered}
}

// Rules returns the rules in evaluation order.
func (rs RuleSet) Rules() []Rule {
	return append([]Rule(nil), rs.rules...)
}

// Len returns the number of rules.
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// Lookup returns the rule with the given name.
func (rs RuleSet) Lookup(name string) (Rule, bool) {
	for _, r := range rs.rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}
