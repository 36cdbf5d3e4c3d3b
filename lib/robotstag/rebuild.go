package robotstag

import "time"

// Rebuild normalizes a merged rule set into the effective restrictions.
//
// The implication policy:
//   - "none" expands to noindex + nofollow and the umbrella key itself is
//     dropped.
//   - "all" asserts no restrictions and never survives; it does not cancel
//     explicit restrictive directives that were also present.
//   - "unavailable_after" with a parsed date at or before now implies
//     noindex. The dated rule itself is kept so callers can still read the
//     deadline. An unparsed or future date implies nothing.
//
// Rebuild is pure: it never mutates its input and the clock is an explicit
// argument.
func Rebuild(rules RuleSet, now time.Time) RuleSet {
	out := make(RuleSet, len(rules)+1)
	for directive, rule := range rules {
		if directive == All || directive == None {
			continue
		}
		out[directive] = rule
	}

	if _, ok := rules[None]; ok {
		setIfAbsent(out, NoIndex)
		setIfAbsent(out, NoFollow)
	}
	if rule, ok := rules[UnavailableAfter]; ok {
		if !rule.Time.IsZero() && !rule.Time.After(now) {
			setIfAbsent(out, NoIndex)
		}
	}

	return out
}

func setIfAbsent(rules RuleSet, directive Directive) {
	if _, ok := rules[directive]; ok {
		return
	}
	rules[directive] = Rule{Directive: directive}
}
