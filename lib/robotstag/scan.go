package robotstag

import (
	"strings"
	"time"

	"xrobots/lib/textutil"
	"xrobots/lib/timeutil"
)

const headerName = "x-robots-tag"

type scopedRule struct {
	scope string
	rule  Rule
}

// scanHeader tokenizes one raw header line into scoped rules.
//
// A line looks like
//
//	X-Robots-Tag: [scope:] directive[: value](, directive[: value])*
//
// The scope prefix, when present, is the text before the first fragment's
// first colon, provided it is non-empty and not itself a directive name
// ("noindex: ..." must not turn into a scope called noindex). Every
// fragment on the line inherits that scope. Lines that are not an
// X-Robots-Tag header at all yield nothing.
func scanHeader(line string) []scopedRule {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return nil
	}
	if textutil.NormalizeToken(name) != headerName {
		return nil
	}

	fragments := strings.Split(value, ",")

	scope := ""
	first := strings.TrimSpace(fragments[0])
	if left, rest, found := strings.Cut(first, ":"); found {
		token := strings.TrimSpace(left)
		if token != "" {
			if _, isDirective := Lookup(token); !isDirective {
				scope = token
				fragments[0] = rest
			}
		}
	}

	var out []scopedRule
	// index into out of the most recent dated rule. splitting on commas
	// tears apart date values like "Friday, 25 Jun 2010 15:00:00 PST", so
	// fragments that carry no recognized directive are folded back into
	// the dated rule they continue. the window closes at the next
	// recognized directive.
	dated := -1
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		name := fragment
		if left, _, found := strings.Cut(fragment, ":"); found {
			name = left
		}
		directive, known := Lookup(name)
		if !known {
			if dated >= 0 {
				out[dated].rule = appendRawValue(out[dated].rule, fragment)
			}
			// otherwise an unknown directive, skipped for forward
			// compatibility
			continue
		}

		out = append(out, scopedRule{scope: scope, rule: newRule(directive, fragment)})
		if directive.Kind() == KindDated {
			dated = len(out) - 1
		} else {
			dated = -1
		}
	}
	return out
}

// newRule builds a rule from a single "directive[: value]" fragment. Flag
// directives ignore any value text beyond recording it; dated directives
// additionally get their value parsed as a date.
func newRule(directive Directive, fragment string) Rule {
	raw := ""
	if _, value, found := strings.Cut(fragment, ":"); found {
		raw = strings.TrimSpace(value)
	}
	rule := Rule{Directive: directive, Raw: raw}
	parseRuleTime(&rule)
	return rule
}

func appendRawValue(rule Rule, fragment string) Rule {
	if rule.Raw == "" {
		rule.Raw = fragment
	} else {
		rule.Raw += ", " + fragment
	}
	parseRuleTime(&rule)
	return rule
}

// parseRuleTime fills in Rule.Time for dated directives. A value that
// fails to parse is not an error: the rule keeps its raw text and a zero
// time, per the contract that a bad date never aborts a parse.
func parseRuleTime(rule *Rule) {
	if rule.Directive.Kind() != KindDated || rule.Raw == "" {
		return
	}
	t, err := timeutil.ParseDate(rule.Raw)
	if err != nil {
		rule.Time = time.Time{}
		return
	}
	rule.Time = t
}
