package matcher

import (
	"fmt"
	"strings"
)

// Shadow records a trigger that can never decide a match because any input
// containing it also contains a trigger of a higher-ranked rule.
type Shadow struct {
	Rule      string
	Trigger   string
	ByRule    string
	ByTrigger string
}

func (s Shadow) String() string {
	return fmt.Sprintf("rule %q trigger %q is shadowed by rule %q trigger %q", s.Rule, s.Trigger, s.ByRule, s.ByTrigger)
}

// Lint reports every shadowed trigger in rules.
//
// A trigger of a later rule is shadowed when it contains a trigger of an
// earlier rule with a lower priority. With equal priorities the longer trigger
// wins, so only identical triggers shadow, and the rule whose name sorts
// first keeps them.
//
// Lint only compares triggers with each other. A short trigger that occurs
// inside ordinary words ("hi" in "which") still captures inputs meant for
// later rules, and Lint does not report that.
func Lint(rules RuleSet) []Shadow {
	var shadows []Shadow
	for j, later := range rules.rules {
		for _, trigger := range later.Triggers {
			if s, ok := shadowedBy(rules.rules[:j], later, trigger); ok {
				shadows = append(shadows, s)
			}
		}
	}
	return shadows
}

func shadowedBy(earlier []Rule, later Rule, trigger string) (Shadow, bool) {
	for _, r := range earlier {
		for _, t := range r.Triggers {
			var hit bool
			if r.Priority < later.Priority {
				hit = strings.Contains(trigger, t)
			} else {
				hit = trigger == t
			}
			if hit {
				return Shadow{Rule: later.Name, Trigger: trigger, ByRule: r.Name, ByTrigger: t}, true
			}
		}
	}
	return Shadow{}, false
}
