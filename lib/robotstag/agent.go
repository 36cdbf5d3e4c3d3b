package robotstag

import "xrobots/lib/textutil"

// resolveScope picks the scope token that applies to a user-agent.
// Matching is the containment test from textutil.MatchToken, so the full
// agent string "Mozilla/5.0 (compatible; Googlebot/2.1; ...)" still hits a
// "googlebot" scope. When several tokens match, the most specific
// (longest) wins; equal lengths break lexicographically so resolution is
// deterministic. Returns "" (the default scope) when nothing matches or
// the caller supplied no user-agent.
func resolveScope(scopes []string, userAgent string) string {
	if textutil.NormalizeToken(userAgent) == "" {
		return ""
	}

	best := ""
	for _, scope := range scopes {
		if scope == "" {
			continue
		}
		if !textutil.MatchToken(userAgent, scope) {
			continue
		}
		if best == "" ||
			len(scope) > len(best) ||
			(len(scope) == len(best) && scope < best) {
			best = scope
		}
	}
	return best
}
