package robotstag

import (
	"context"
	"testing"
)

// FuzzScanHeader checks the structural invariants the scanner promises no
// matter how mangled the input line is.
func FuzzScanHeader(f *testing.F) {
	f.Add("X-Robots-Tag: noindex")
	f.Add("X-Robots-Tag: googlebot: all, none, nofollow")
	f.Add("X-Robots-Tag: unavailable_after: Friday, 25 Jun 2010 15:00:00 PST, noindex")
	f.Add("X-Robots-Tag: noindex: : : ,,")
	f.Add("x-robots-tag:unavailable_after:")
	f.Add("Cache-Control: no-store")
	f.Add(": : :")
	f.Add("")

	f.Fuzz(func(t *testing.T, line string) {
		for _, scoped := range scanHeader(line) {
			if _, known := directiveTable[scoped.rule.Directive]; !known {
				t.Fatalf("scanner emitted unknown directive %q", scoped.rule.Directive)
			}
			if _, isDirective := Lookup(scoped.scope); isDirective {
				t.Fatalf("scanner used directive name %q as a scope", scoped.scope)
			}
			if scoped.rule.Directive.Kind() == KindFlag && !scoped.rule.Time.IsZero() {
				t.Fatalf("flag directive %q carries a time", scoped.rule.Directive)
			}
		}
	})
}

// FuzzParse drives whole header lists through the facade; parsing must
// never panic and queries must stay self-consistent.
func FuzzParse(f *testing.F) {
	f.Add("googlebot", "X-Robots-Tag: googlebot: noindex", "X-Robots-Tag: nofollow")
	f.Add("", "X-Robots-Tag: none", "")
	f.Add("bingbot", "not a header", "X-Robots-Tag: unavailable_after: garbage")

	f.Fuzz(func(t *testing.T, userAgent, lineA, lineB string) {
		parser := New(userAgent)
		parser.Parse(context.Background(), []string{lineA, lineB})

		rules := parser.Rules()
		if rules.Contains(All) || rules.Contains(None) {
			t.Fatal("umbrella directive survived normalization")
		}
		for directive := range parser.RawRules() {
			if _, known := directiveTable[directive]; !known {
				t.Fatalf("raw rules hold unknown directive %q", directive)
			}
		}
	})
}
