// Package robotstag parses X-Robots-Tag response headers into the set of
// indexing rules that apply to a given user-agent.
//
// Header lines are scanned into per-scope rule sets ("scope" being an
// optional bot name prefix like "googlebot:"), the scope matching the
// caller's user-agent is overlaid on the unscoped defaults, and the result
// is normalized so umbrella directives like "none" expand into the
// restrictions they imply. The package never performs I/O: callers hand it
// raw header lines and query the result.
package robotstag

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/antzucaro/matchr"

	"xrobots/lib/textutil"
)

// Directive is one of the closed set of directive names defined for the
// X-Robots-Tag header. Values are the lowercase wire spelling.
type Directive string

const (
	All              Directive = "all"
	None             Directive = "none"
	NoArchive        Directive = "noarchive"
	NoFollow         Directive = "nofollow"
	NoImageIndex     Directive = "noimageindex"
	NoIndex          Directive = "noindex"
	NoODP            Directive = "noodp"
	NoSnippet        Directive = "nosnippet"
	NoTranslate      Directive = "notranslate"
	UnavailableAfter Directive = "unavailable_after"
)

// Kind describes how a directive's value is parsed.
type Kind int

const (
	// KindFlag directives are plain presence markers, any text after the
	// name is ignored.
	KindFlag Kind = iota
	// KindDated directives carry a date value, currently only
	// unavailable_after.
	KindDated
)

func (k Kind) String() string {
	if k == KindDated {
		return "dated"
	}
	return "flag"
}

type directiveMeta struct {
	kind    Kind
	meaning string
}

// the process-wide directive table. read-only after init: Lookup, Kind and
// Meaning all dispatch off of it.
var directiveTable = map[Directive]directiveMeta{
	All: {
		kind:    KindFlag,
		meaning: "No restrictions for indexing or serving. This is the default state.",
	},
	None: {
		kind:    KindFlag,
		meaning: "Equivalent to noindex and nofollow combined.",
	},
	NoArchive: {
		kind:    KindFlag,
		meaning: "Do not show a cached link for this page in search results.",
	},
	NoFollow: {
		kind:    KindFlag,
		meaning: "Do not follow the links on this page.",
	},
	NoImageIndex: {
		kind:    KindFlag,
		meaning: "Do not index images on this page.",
	},
	NoIndex: {
		kind:    KindFlag,
		meaning: "Do not show this page in search results.",
	},
	NoODP: {
		kind:    KindFlag,
		meaning: "Do not use Open Directory Project metadata for this page's title or snippet.",
	},
	NoSnippet: {
		kind:    KindFlag,
		meaning: "Do not show a text snippet or video preview for this page in search results.",
	},
	NoTranslate: {
		kind:    KindFlag,
		meaning: "Do not offer translation of this page in search results.",
	},
	UnavailableAfter: {
		kind:    KindDated,
		meaning: "Do not show this page in search results after the given date/time.",
	},
}

var directiveOrder = []Directive{
	All,
	None,
	NoArchive,
	NoFollow,
	NoImageIndex,
	NoIndex,
	NoODP,
	NoSnippet,
	NoTranslate,
	UnavailableAfter,
}

// Lookup normalizes a directive name and reports whether it is a known
// directive.
func Lookup(name string) (Directive, bool) {
	directive := Directive(textutil.NormalizeToken(name))
	_, ok := directiveTable[directive]
	return directive, ok
}

func (d Directive) Kind() Kind {
	return directiveTable[d].kind
}

// Directives lists every known directive in a stable order.
func Directives() []Directive {
	return slices.Clone(directiveOrder)
}

var ErrUnknownDirective = errors.New("unknown directive")

// Meaning returns the documented purpose of a directive. Asking about a
// name outside the directive table is API misuse and fails hard, unlike
// unknown directives inside scanned headers which are skipped.
func Meaning(name string) (string, error) {
	directive, ok := Lookup(name)
	if !ok {
		if suggestion := closestDirective(name); suggestion != "" {
			return "", fmt.Errorf("%w: %q (closest match: %q)", ErrUnknownDirective, name, suggestion)
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownDirective, name)
	}
	return directiveTable[directive].meaning, nil
}

// minimum jaro-winkler similarity before a suggestion is offered
const suggestionThreshold = 0.8

func closestDirective(name string) Directive {
	name = textutil.NormalizeToken(name)
	if name == "" {
		return ""
	}

	var best Directive
	bestScore := float64(0)
	for _, directive := range directiveOrder {
		score := matchr.JaroWinkler(name, string(directive), false)
		if score > bestScore {
			bestScore = score
			best = directive
		}
	}
	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}

// Rule is a single directive recorded for a scope.
type Rule struct {
	Directive Directive
	// Time holds the parsed value of a dated directive. The zero value
	// means the directive either has no date or its date failed to parse;
	// Raw is kept either way.
	Time time.Time
	// Raw is the value text as written in the header, "" for bare flags.
	Raw string
}

// Value renders a rule the way exports and the JSON API present it: flag
// directives become true, dated directives show their timestamp (or the
// raw text when the date did not parse).
func (r Rule) Value() any {
	if r.Directive.Kind() == KindDated {
		if !r.Time.IsZero() {
			return r.Time.Format(time.RFC3339)
		}
		if r.Raw != "" {
			return r.Raw
		}
	}
	return true
}

// RuleSet maps directives to their recorded rule for one scope.
type RuleSet map[Directive]Rule

// MarshalJSON renders the set as {"directive": value}. Map keys sort on
// marshal so the output is stable.
func (rs RuleSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(rs))
	for directive, rule := range rs {
		out[string(directive)] = rule.Value()
	}
	return json.Marshal(out)
}

func (rs RuleSet) Clone() RuleSet {
	out := make(RuleSet, len(rs))
	for directive, rule := range rs {
		out[directive] = rule
	}
	return out
}

// Contains reports whether every named directive is present.
func (rs RuleSet) Contains(directives ...Directive) bool {
	for _, directive := range directives {
		if _, ok := rs[directive]; !ok {
			return false
		}
	}
	return true
}
