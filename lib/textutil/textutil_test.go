package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeToken(t *testing.T) {
	require.Equal(t, "googlebot", NormalizeToken("  GoogleBot\n"))
	require.Equal(t, "bingbot/2.0", NormalizeToken("BingBot/2.0"))
	require.Equal(t, "", NormalizeToken(" \t\n"))
}

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "a b c", CollapseSpace("  a \t b\n\nc "))
	require.Equal(t, "", CollapseSpace(""))
}

func TestMatchToken(t *testing.T) {
	for _, tc := range []struct {
		name      string
		userAgent string
		token     string
		expect    bool
	}{
		{
			name:      "exact",
			userAgent: "googlebot",
			token:     "googlebot",
			expect:    true,
		},
		{
			name:      "case insensitive",
			userAgent: "GoogleBot",
			token:     "googlebot",
			expect:    true,
		},
		{
			name:      "token inside full agent string",
			userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			token:     "googlebot",
			expect:    true,
		},
		{
			name:      "agent inside longer token",
			userAgent: "googlebot",
			token:     "googlebot-news",
			expect:    true,
		},
		{
			name:      "unrelated",
			userAgent: "bingbot",
			token:     "googlebot",
			expect:    false,
		},
		{
			name:      "empty agent",
			userAgent: "",
			token:     "googlebot",
			expect:    false,
		},
		{
			name:      "empty token",
			userAgent: "googlebot",
			token:     "",
			expect:    false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, MatchToken(tc.userAgent, tc.token))
		})
	}
}
