package inspect

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"xrobots/lib/metarobots"
	"xrobots/lib/robotstag"
	"xrobots/lib/urlutil"
)

// Report is the full robots verdict for one resource.
type Report struct {
	RequestedURL string `json:"requested_url,omitempty"`
	FinalURL     string `json:"final_url,omitempty"`
	StatusCode   int    `json:"status_code,omitempty"`
	Title        string `json:"title,omitempty"`

	// UserAgent the rules were resolved for and the scope token that
	// matched it, "" when only unscoped rules applied.
	UserAgent    string `json:"user_agent"`
	MatchedScope string `json:"matched_scope"`

	// HeaderLines are the X-Robots-Tag lines of the response, MetaLines
	// the synthetic lines derived from robots meta tags.
	HeaderLines []string `json:"header_lines"`
	MetaLines   []string `json:"meta_lines,omitempty"`

	// Rules is the normalized effective rule set, RawRules the overlay
	// before normalization, Scopes the untouched per-scope export.
	Rules    robotstag.RuleSet            `json:"rules"`
	RawRules robotstag.RuleSet            `json:"raw_rules"`
	Scopes   map[string]robotstag.RuleSet `json:"scopes"`

	Warnings []string `json:"warnings,omitempty"`
}

// Restricted reports whether any restriction applies at all.
func (r *Report) Restricted() bool {
	return len(r.Rules) > 0
}

// Inspect fetches the target and resolves its robots rules for the given
// user-agent (empty meaning the client's own). Meta tags in HTML bodies
// are folded in after the response headers, so on a conflict the page
// author's meta tag wins over the server configuration.
func (c *Client) Inspect(ctx context.Context, target string, userAgent string) (*Report, error) {
	ctx, span := tracer.Start(ctx, "client:Inspect")
	defer span.End()

	if userAgent == "" {
		userAgent = c.opts.UserAgent
	}

	fetched, err := c.Fetch(ctx, target)
	if err != nil {
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	report := &Report{
		RequestedURL: fetched.RequestedURL,
		FinalURL:     fetched.FinalURL,
		StatusCode:   fetched.StatusCode,
		UserAgent:    userAgent,
		HeaderLines:  fetched.HeaderLines,
	}
	if fetched.StatusCode >= 400 {
		report.Warnings = append(
			report.Warnings,
			fmt.Sprintf("target answered with status %d", fetched.StatusCode),
		)
	}

	lines := slices.Clone(fetched.HeaderLines)
	if !c.opts.SkipMetaTags && isHTML(fetched.ContentType) && len(fetched.Body) > 0 {
		doc, err := metarobots.Parse(ctx, bytes.NewReader(fetched.Body))
		if err != nil {
			// a broken body only costs us the meta tags
			report.Warnings = append(
				report.Warnings,
				fmt.Sprintf("failed to parse html body: %s", err),
			)
		} else {
			report.Title = doc.Title
			report.MetaLines = metarobots.HeaderLines(doc.Tags)
			lines = append(lines, report.MetaLines...)
		}
	}

	c.resolve(ctx, report, lines)
	return report, nil
}

func (c *Client) resolve(ctx context.Context, report *Report, lines []string) {
	parser := robotstag.New(report.UserAgent, robotstag.WithNow(c.now))
	parser.Parse(ctx, lines)

	report.MatchedScope = parser.Scope()
	report.Rules = parser.Rules()
	report.RawRules = parser.RawRules()
	report.Scopes = parser.Export()
}

func isHTML(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml")
}

// ParseRequest asks for rule resolution over caller-supplied header lines,
// no network involved.
type ParseRequest struct {
	// URL only labels the report. An invalid one is a warning, not an
	// error, since the headers are already in hand.
	URL       string
	Headers   []string
	UserAgent string
	// Now overrides the clock used by normalization, nil means time.Now.
	Now func() time.Time
}

// ParseHeaders resolves robots rules from pre-fetched header lines.
func ParseHeaders(ctx context.Context, req ParseRequest) *Report {
	ctx, span := tracer.Start(ctx, "ParseHeaders")
	defer span.End()

	report := &Report{
		UserAgent:   req.UserAgent,
		HeaderLines: req.Headers,
	}
	if req.URL != "" {
		normalized, err := urlutil.Normalize(req.URL)
		if err != nil {
			report.Warnings = append(
				report.Warnings,
				fmt.Sprintf("invalid url %q: %s", req.URL, err),
			)
		} else {
			report.RequestedURL = normalized
		}
	}

	now := req.Now
	if now == nil {
		now = time.Now
	}
	parser := robotstag.New(req.UserAgent, robotstag.WithNow(now))
	parser.Parse(ctx, req.Headers)

	report.MatchedScope = parser.Scope()
	report.Rules = parser.Rules()
	report.RawRules = parser.RawRules()
	report.Scopes = parser.Export()
	return report
}
