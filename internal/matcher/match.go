package matcher

import "strings"

// Result describes a successful match.
type Result struct {
	Rule Rule
	// Trigger is the longest trigger of Rule found in the input.
	Trigger string
	// Specificity is len(Trigger).
	Specificity int
}

// Match returns the winning rule for input, or ok=false when no trigger is
// contained in the lower-cased input.
//
// The rule with the lowest priority wins. Among matching rules of equal
// priority the one with the longest matched trigger wins, then the one whose
// name sorts first.
func Match(input string, rules RuleSet) (*Result, bool) {
	text := strings.ToLower(input)

	var best *Result
	for _, r := range rules.rules {
		if best != nil && r.Priority != best.Rule.Priority {
			break
		}
		trigger, ok := longestTrigger(text, r.Triggers)
		if !ok {
			continue
		}
		if best == nil || len(trigger) > best.Specificity {
			best = &Result{Rule: r, Trigger: trigger, Specificity: len(trigger)}
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

// Matches reports whether input contains any of the rule's triggers.
func (r Rule) Matches(input string) bool {
	_, ok := longestTrigger(strings.ToLower(input), r.Triggers)
	return ok
}

func longestTrigger(text string, triggers []string) (string, bool) {
	found := ""
	ok := false
	for _, t := range triggers {
		t = strings.ToLower(t)
		if t == "" || !strings.Contains(text, t) {
			continue
		}
		if !ok || len(t) > len(found) {
			found = t
			ok = true
		}
	}
	return found, ok
}
