package inspect

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xrobots/lib/robotstag"
	"xrobots/lib/testutil"
)

func TestInspectHeadersOnly(t *testing.T) {
	result, cleanup := testutil.SetupServer(t, testutil.ServerParams{
		Name: "lib/inspect",
		RobotsHeaders: []string{
			"googlebot: noindex, nofollow",
			"noarchive",
		},
	})
	defer cleanup()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	report, err := client.Inspect(context.Background(), result.URL, "googlebot")
	require.NoError(t, err)

	require.Equal(t, 200, report.StatusCode)
	require.Equal(t, "googlebot", report.MatchedScope)
	require.Equal(t, []string{
		"X-Robots-Tag: googlebot: noindex, nofollow",
		"X-Robots-Tag: noarchive",
	}, report.HeaderLines)
	require.True(t, report.Rules.Contains(
		robotstag.NoIndex,
		robotstag.NoFollow,
		robotstag.NoArchive,
	))
	require.True(t, report.Restricted())
	require.Empty(t, report.Warnings)
}

func TestInspectMetaTags(t *testing.T) {
	result, cleanup := testutil.SetupServer(t, testutil.ServerParams{
		Name:          "lib/inspect",
		RobotsHeaders: []string{"unavailable_after: 2030-01-01"},
		HTML: `<html><head>
			<title>Fixture Page</title>
			<meta name="robots" content="unavailable_after: 2031-01-01">
			<meta name="googlebot" content="nosnippet">
		</head><body></body></html>`,
	})
	defer cleanup()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	report, err := client.Inspect(context.Background(), result.URL, "googlebot")
	require.NoError(t, err)

	require.Equal(t, "Fixture Page", report.Title)
	require.Equal(t, []string{
		"X-Robots-Tag: unavailable_after: 2031-01-01",
		"X-Robots-Tag: googlebot: nosnippet",
	}, report.MetaLines)

	// the meta tag came after the header, so its value wins
	require.Equal(t, "2031-01-01", report.RawRules[robotstag.UnavailableAfter].Raw)
	require.True(t, report.Rules.Contains(robotstag.NoSnippet))
}

func TestInspectSkipMetaTags(t *testing.T) {
	result, cleanup := testutil.SetupServer(t, testutil.ServerParams{
		Name:          "lib/inspect",
		RobotsHeaders: []string{"noindex"},
		HTML:          `<html><head><meta name="robots" content="nofollow"></head></html>`,
	})
	defer cleanup()

	client, err := NewClient(ClientOptions{SkipMetaTags: true})
	require.NoError(t, err)

	report, err := client.Inspect(context.Background(), result.URL, "")
	require.NoError(t, err)
	require.Empty(t, report.MetaLines)
	require.True(t, report.Rules.Contains(robotstag.NoIndex))
	require.False(t, report.Rules.Contains(robotstag.NoFollow))
}

func TestInspectNonHTMLBodyIgnored(t *testing.T) {
	result, cleanup := testutil.SetupServer(t, testutil.ServerParams{
		Name:          "lib/inspect",
		RobotsHeaders: []string{"noindex"},
		// meta-looking markup under text/plain must not be scanned
		PlainBody: `<meta name="robots" content="nofollow">`,
	})
	defer cleanup()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	report, err := client.Inspect(context.Background(), result.URL, "")
	require.NoError(t, err)
	require.Empty(t, report.MetaLines)
	require.Empty(t, report.Title)
	require.False(t, report.Rules.Contains(robotstag.NoFollow))
}

func TestInspectErrorStatusWarns(t *testing.T) {
	result, cleanup := testutil.SetupServer(t, testutil.ServerParams{
		Name:          "lib/inspect",
		RobotsHeaders: []string{"noindex"},
		Status:        404,
	})
	defer cleanup()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	report, err := client.Inspect(context.Background(), result.URL, "")
	require.NoError(t, err)
	require.Equal(t, 404, report.StatusCode)
	require.NotEmpty(t, report.Warnings)
	// headers on an error response still parse
	require.True(t, report.Rules.Contains(robotstag.NoIndex))
}

func TestInspectFollowsRedirects(t *testing.T) {
	result, cleanup := testutil.SetupServer(t, testutil.ServerParams{
		Name:          "lib/inspect",
		RobotsHeaders: []string{"nosnippet"},
		RedirectTo:    "/actual-page",
	})
	defer cleanup()

	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	report, err := client.Inspect(context.Background(), result.URL, "")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(report.FinalURL, "/actual-page"))
	require.True(t, report.Rules.Contains(robotstag.NoSnippet))
}

func TestInspectInvalidTarget(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	_, err = client.Inspect(context.Background(), "ftp://example.com/file", "")
	require.Error(t, err)
}

func TestFetchBodyCap(t *testing.T) {
	result, cleanup := testutil.SetupServer(t, testutil.ServerParams{
		Name: "lib/inspect",
		HTML: "<html>" + strings.Repeat("x", 4096) + "</html>",
	})
	defer cleanup()

	client, err := NewClient(ClientOptions{MaxBodyBytes: 64})
	require.NoError(t, err)

	fetched, err := client.Fetch(context.Background(), result.URL)
	require.NoError(t, err)
	require.LessOrEqual(t, len(fetched.Body), 64)
}

func TestParseHeaders(t *testing.T) {
	report := ParseHeaders(context.Background(), ParseRequest{
		URL:       "Example.com/page",
		UserAgent: "bingbot",
		Headers: []string{
			"X-Robots-Tag: bingbot: noindex",
			"X-Robots-Tag: noodp",
		},
	})

	require.Equal(t, "https://example.com/page", report.RequestedURL)
	require.Equal(t, "bingbot", report.MatchedScope)
	require.True(t, report.Rules.Contains(robotstag.NoIndex, robotstag.NoODP))
	require.Empty(t, report.Warnings)
}

func TestParseHeadersBadURLIsSoft(t *testing.T) {
	report := ParseHeaders(context.Background(), ParseRequest{
		URL:     "ftp://example.com",
		Headers: []string{"X-Robots-Tag: noindex"},
	})

	require.NotEmpty(t, report.Warnings)
	require.Empty(t, report.RequestedURL)
	// parsing proceeds off the supplied headers regardless
	require.True(t, report.Rules.Contains(robotstag.NoIndex))
}

func TestParseHeadersFrozenClock(t *testing.T) {
	past := time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)
	report := ParseHeaders(context.Background(), ParseRequest{
		Headers: []string{"X-Robots-Tag: unavailable_after: Friday, 25 Jun 2010 15:00:00 PST"},
		Now:     func() time.Time { return past },
	})
	require.False(t, report.Rules.Contains(robotstag.NoIndex))
}
