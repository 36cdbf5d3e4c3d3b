package devenv

// LiveInspectTestConfig gates tests that hit real sites. Lives at
// dev/.state/live_inspect.json5 and is never committed.
type LiveInspectTestConfig struct {
	// urls expected to answer with an X-Robots-Tag header
	Targets []string `json:"targets"`
	// user agent to identify as, defaults to the cli's
	UserAgent string `json:"user_agent"`
	// set when the targets sit behind cloudflare
	BypassBotProtection bool `json:"bypass_bot_protection"`
}
