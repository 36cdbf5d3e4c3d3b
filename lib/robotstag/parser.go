package robotstag

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("lib/robotstag")

// Parser scans header lines for one response and answers queries about
// the rules that apply to its user-agent.
//
// A Parser is not safe for concurrent use, but parses are independent:
// callers handling many responses run one Parser per response.
type Parser struct {
	userAgent string
	now       func() time.Time

	// raw per-scope rules from the last Parse, "" keying the unscoped
	// default
	scopes map[string]RuleSet
	// scope token resolved for userAgent at parse time
	scope string
}

type Option func(*Parser)

// WithNow overrides the clock used when normalization evaluates
// unavailable_after deadlines.
func WithNow(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a parser answering for the given user-agent. An empty
// user-agent sees only unscoped rules.
func New(userAgent string, opts ...Option) *Parser {
	p := &Parser{
		userAgent: userAgent,
		now:       time.Now,
		scopes:    map[string]RuleSet{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans raw header lines into per-scope rule sets and resolves the
// scope for the parser's user-agent once. Later lines override earlier
// ones for the same scope and directive. Previous state is replaced.
//
// Nothing here can fail: an empty or entirely malformed header list just
// yields an empty rule set.
func (p *Parser) Parse(ctx context.Context, headers []string) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	scopes := map[string]RuleSet{}
	for _, line := range headers {
		for _, scoped := range scanHeader(line) {
			rules, ok := scopes[scoped.scope]
			if !ok {
				rules = RuleSet{}
				scopes[scoped.scope] = rules
			}
			rules[scoped.rule.Directive] = scoped.rule
		}
	}

	tokens := make([]string, 0, len(scopes))
	for scope := range scopes {
		tokens = append(tokens, scope)
	}

	p.scopes = scopes
	p.scope = resolveScope(tokens, p.userAgent)

	span.SetAttributes(
		attribute.Int("header_lines", len(headers)),
		attribute.Int("scopes", len(scopes)),
		attribute.String("matched_scope", p.scope),
	)
}

// Scope returns the scope token matched for the parser's user-agent, ""
// when only the default scope applies.
func (p *Parser) Scope() string {
	return p.scope
}

// UserAgent returns the user-agent the parser answers for.
func (p *Parser) UserAgent() string {
	return p.userAgent
}

// overlay recomputes default-scope rules overlaid with the matched scope.
// Queries never re-scan headers; they work from the parsed state.
func (p *Parser) overlay() RuleSet {
	merged := make(RuleSet, len(p.scopes[""])+len(p.scopes[p.scope]))
	for directive, rule := range p.scopes[""] {
		merged[directive] = rule
	}
	if p.scope != "" {
		for directive, rule := range p.scopes[p.scope] {
			merged[directive] = rule
		}
	}
	return merged
}

// Rules returns the effective rule set for the parser's user-agent:
// the overlay of default and matched scope, normalized by Rebuild.
func (p *Parser) Rules() RuleSet {
	return Rebuild(p.overlay(), p.now())
}

// RawRules returns the overlay without normalization, so umbrella
// directives like all and none appear exactly as written.
func (p *Parser) RawRules() RuleSet {
	return p.overlay()
}

// Export returns a copy of the full per-scope rule map for diagnostics.
// The map key "" holds the unscoped default rules.
func (p *Parser) Export() map[string]RuleSet {
	out := make(map[string]RuleSet, len(p.scopes))
	for scope, rules := range p.scopes {
		out[scope] = rules.Clone()
	}
	return out
}
