package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeToken(token string) string {
	token = strings.ToLower(token)
	token = strings.Trim(token, " \n\t")
	return token
}

func CollapseSpace(s string) string {
	s = strings.Trim(s, " \n\t")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// MatchToken reports whether a scope token and a user-agent identify the
// same bot. Product tokens rarely match exactly ("googlebot" vs.
// "Googlebot/2.1 (+http://www.google.com/bot.html)") so this is a
// case-insensitive containment check in either direction.
func MatchToken(userAgent string, token string) bool {
	userAgent = NormalizeToken(userAgent)
	token = NormalizeToken(token)
	if userAgent == "" || token == "" {
		return false
	}
	return strings.Contains(userAgent, token) || strings.Contains(token, userAgent)
}
