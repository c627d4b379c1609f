package classification

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Rule maps a regular expression over "name email" to a label.
type Rule struct {
	Name     string
	Label    string
	Regex    string
	Priority int // Higher priority rules are checked first
}

type compiledRule struct {
	regex *regexp.Regexp
	Rule
}

// RuleCategorizer labels contacts by keyword rules and defers to a fallback
// Categorizer when no rule matches.
type RuleCategorizer struct {
	fallback Categorizer
	rules    []compiledRule
}

// NewRuleCategorizer compiles rules. Every rule label must belong to the
// fallback's label set so predictions stay within one closed set.
func NewRuleCategorizer(rules []Rule, fallback Categorizer) (*RuleCategorizer, error) {
	if fallback == nil {
		return nil, fmt.Errorf("rule categorizer requires a fallback")
	}

	labels := fallback.Labels()
	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		if !slices.Contains(labels, r.Label) {
			return nil, fmt.Errorf("rule %s: label %q is not one of %v", r.Name, r.Label, labels)
		}

		regexStr := r.Regex
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}

		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}

		compiled = append(compiled, compiledRule{Rule: r, regex: regex})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &RuleCategorizer{
		fallback: fallback,
		rules:    compiled,
	}, nil
}

// Predict implements Categorizer.
func (rc *RuleCategorizer) Predict(name, email string) string {
	if rule := rc.Match(name, email); rule != nil {
		return rule.Label
	}
	return rc.fallback.Predict(name, email)
}

// Match returns the highest-priority rule matching the contact, or nil.
func (rc *RuleCategorizer) Match(name, email string) *Rule {
	text := Document(name, email)
	for i := range rc.rules {
		if rc.rules[i].regex.MatchString(text) {
			return &rc.rules[i].Rule
		}
	}
	return nil
}

// Labels implements Categorizer.
func (rc *RuleCategorizer) Labels() []string {
	return rc.fallback.Labels()
}

// DefaultRules returns keyword rules over the default label set.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "Relatives",
			Label:    LabelFamily,
			Regex:    `\b(mom|mum|mother|dad|father|sis|sister|bro|brother|grandma|grandpa|aunt|uncle)\b`,
			Priority: 100,
		},
		{
			Name:     "Clients",
			Label:    LabelClient,
			Regex:    `\b(client|customer)s?\b`,
			Priority: 90,
		},
		{
			Name:     "Workplace",
			Label:    LabelWork,
			Regex:    `\b(hr|dr|office|corp|inc|ltd|work)\b`,
			Priority: 80,
		},
	}
}
