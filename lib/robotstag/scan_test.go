package robotstag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScanHeaderBasic(t *testing.T) {
	rules := scanHeader("X-Robots-Tag: noindex")
	require.Len(t, rules, 1)
	require.Equal(t, "", rules[0].scope)
	require.Equal(t, NoIndex, rules[0].rule.Directive)
}

func TestScanHeaderNameMatching(t *testing.T) {
	require.NotEmpty(t, scanHeader("x-robots-tag: noindex"))
	require.NotEmpty(t, scanHeader("X-ROBOTS-TAG: noindex"))
	require.NotEmpty(t, scanHeader("  X-Robots-Tag  : noindex"))

	require.Empty(t, scanHeader("Cache-Control: no-store"))
	require.Empty(t, scanHeader("X-Robots: noindex"))
	require.Empty(t, scanHeader("noindex, nofollow"))
	require.Empty(t, scanHeader(""))
}

func TestScanHeaderScopePrefix(t *testing.T) {
	rules := scanHeader("X-Robots-Tag: googlebot: noindex, nofollow")
	require.Len(t, rules, 2)
	for _, r := range rules {
		require.Equal(t, "googlebot", r.scope)
	}
	require.Equal(t, NoIndex, rules[0].rule.Directive)
	require.Equal(t, NoFollow, rules[1].rule.Directive)
}

func TestScanHeaderDirectiveNameIsNotAScope(t *testing.T) {
	// "noindex:" must parse as a valued directive, not as a scope called
	// noindex
	rules := scanHeader("X-Robots-Tag: noindex: please, nofollow")
	require.Len(t, rules, 2)
	require.Equal(t, "", rules[0].scope)
	require.Equal(t, NoIndex, rules[0].rule.Directive)
	require.Equal(t, "please", rules[0].rule.Raw)
	require.Equal(t, NoFollow, rules[1].rule.Directive)
}

func TestScanHeaderUnknownDirectivesSkipped(t *testing.T) {
	rules := scanHeader("X-Robots-Tag: nocache, noindex, x-directive")
	require.Len(t, rules, 1)
	require.Equal(t, NoIndex, rules[0].rule.Directive)
}

func TestScanHeaderNoValidDirectives(t *testing.T) {
	require.Empty(t, scanHeader("X-Robots-Tag: nocache, whatever"))
	require.Empty(t, scanHeader("X-Robots-Tag:"))
	require.Empty(t, scanHeader("X-Robots-Tag: , ,"))
}

func TestScanHeaderDatedValueSurvivesCommaSplit(t *testing.T) {
	rules := scanHeader("X-Robots-Tag: unavailable_after: Friday, 25 Jun 2010 15:00:00 PST, noindex")
	require.Len(t, rules, 2)

	dated := rules[0].rule
	require.Equal(t, UnavailableAfter, dated.Directive)
	require.Equal(t, "Friday, 25 Jun 2010 15:00:00 PST", dated.Raw)
	require.True(
		t,
		dated.Time.Equal(time.Date(2010, 6, 25, 23, 0, 0, 0, time.UTC)),
		"got %s", dated.Time.UTC(),
	)

	require.Equal(t, NoIndex, rules[1].rule.Directive)
}

func TestScanHeaderDatedValueUnparseable(t *testing.T) {
	rules := scanHeader("X-Robots-Tag: unavailable_after: whenever I feel like it")
	require.Len(t, rules, 1)
	require.Equal(t, UnavailableAfter, rules[0].rule.Directive)
	require.Equal(t, "whenever I feel like it", rules[0].rule.Raw)
	require.True(t, rules[0].rule.Time.IsZero())
}

func TestScanHeaderContinuationWindowCloses(t *testing.T) {
	// "garbage" follows a flag directive, so it cannot be a continuation
	// of the earlier date and is skipped
	rules := scanHeader("X-Robots-Tag: unavailable_after: Fri, 25 Jun 2010 15:00:00 GMT, noindex, garbage")
	require.Len(t, rules, 2)
	require.Equal(t, "Fri, 25 Jun 2010 15:00:00 GMT", rules[0].rule.Raw)
}

func TestScanHeaderScopedDatedValue(t *testing.T) {
	rules := scanHeader("X-Robots-Tag: googlebot: unavailable_after: Friday, 25 Jun 2010 15:00:00 PST")
	require.Len(t, rules, 1)
	require.Equal(t, "googlebot", rules[0].scope)
	require.Equal(t, UnavailableAfter, rules[0].rule.Directive)
	require.False(t, rules[0].rule.Time.IsZero())
}

func TestScanHeaderEmptyFragments(t *testing.T) {
	rules := scanHeader("X-Robots-Tag: noindex,, nofollow, ")
	require.Len(t, rules, 2)
}
