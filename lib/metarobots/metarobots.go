// Package metarobots extracts robots meta tags from HTML documents.
//
// A <meta name="robots" content="noindex"> tag carries the same grammar as
// an X-Robots-Tag header value, and <meta name="googlebot" content="...">
// scopes it to one bot. Tags are rendered back into synthetic header lines
// so the header parser stays the single source of rule semantics.
package metarobots

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"xrobots/lib/htmlutil"
	"xrobots/lib/robotstag"
	"xrobots/lib/textutil"
)

var tracer = otel.Tracer("lib/metarobots")

// Tag is one robots meta tag found in a document.
type Tag struct {
	// Scope is the bot the tag addresses, "" when the tag's name was the
	// generic "robots".
	Scope string
	// Content is the directive list exactly as the page author wrote it.
	Content string
}

// Document is the robots-relevant view of one HTML page.
type Document struct {
	Title string
	Tags  []Tag
}

// Parse scans an HTML document for robots meta tags. Meta tags on other
// names (description, viewport, ...) are told apart from bot-scoped
// robots tags by whether their content parses as a directive list.
func Parse(ctx context.Context, body io.Reader) (*Document, error) {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "got error while parsing html")
		return nil, err
	}

	out := &Document{}

	if title := doc.Find("title").First(); len(title.Nodes) > 0 {
		out.Title = htmlutil.CleanText(htmlutil.GetText(title.Nodes[0]))
	}

	for _, node := range doc.Find("meta").Nodes {
		name, ok := htmlutil.Attr(node, "name")
		if !ok {
			continue
		}
		content, ok := htmlutil.Attr(node, "content")
		if !ok {
			continue
		}

		name = textutil.NormalizeToken(htmlutil.CleanText(name))
		content = htmlutil.CleanText(content)
		if name == "" || content == "" {
			continue
		}
		if !hasDirective(content) {
			continue
		}

		scope := ""
		if name != "robots" {
			scope = name
		}
		out.Tags = append(out.Tags, Tag{Scope: scope, Content: content})
		span.AddEvent("robots meta tag", trace.WithAttributes(
			attribute.String("scope", scope),
			attribute.String("content", content),
		))
	}

	return out, nil
}

// hasDirective reports whether at least one comma fragment of the content
// names a known directive.
func hasDirective(content string) bool {
	for _, fragment := range strings.Split(content, ",") {
		name := fragment
		if left, _, found := strings.Cut(fragment, ":"); found {
			name = left
		}
		if _, ok := robotstag.Lookup(name); ok {
			return true
		}
	}
	return false
}

// HeaderLines renders tags as X-Robots-Tag header lines so meta tags and
// response headers feed one parser.
func HeaderLines(tags []Tag) []string {
	lines := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.Scope == "" {
			lines = append(lines, "X-Robots-Tag: "+tag.Content)
			continue
		}
		lines = append(lines, fmt.Sprintf("X-Robots-Tag: %s: %s", tag.Scope, tag.Content))
	}
	return lines
}
