package unsure

import (
	"fmt"
	"strings"
)

// Rule selects a pairwise combination rule.
type Rule int

const (
	// RuleConjunctive is the unnormalized conjunctive form (intersection).
	RuleConjunctive Rule = iota
	// RuleDisjunctive is the disjunctive form (union).
	RuleDisjunctive
	// RuleDempster is Dempster's rule: conjunctive form normalized by 1 - K.
	RuleDempster
	// RuleYager moves the conflict onto the whole frame.
	RuleYager
	// RuleDuboisPrade moves each partial conflict onto the union of its sources.
	RuleDuboisPrade
	// RulePCR5 redistributes each partial conflict proportionally to its sources.
	RulePCR5
)

var ruleNames = [...]string{
	RuleConjunctive: "conjunctive",
	RuleDisjunctive: "disjunctive",
	RuleDempster:    "dempster",
	RuleYager:       "yager",
	RuleDuboisPrade: "dubois-prade",
	RulePCR5:        "pcr5",
}

// Rules lists every supported rule.
func Rules() []Rule {
	return []Rule{RuleConjunctive, RuleDisjunctive, RuleDempster, RuleYager, RuleDuboisPrade, RulePCR5}
}

func (r Rule) valid() bool {
	return r >= 0 && int(r) < len(ruleNames)
}

// String returns the stable name of the rule.
func (r Rule) String() string {
	if !r.valid() {
		return fmt.Sprintf("rule(%d)", int(r))
	}
	return ruleNames[r]
}

// ParseRule looks up a rule by name. "dcr" is accepted for Dempster's rule.
func ParseRule(name string) (Rule, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "dcr" {
		return RuleDempster, nil
	}
	for r, s := range ruleNames {
		if s == n {
			return Rule(r), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}
