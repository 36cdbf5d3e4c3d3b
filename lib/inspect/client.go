// Package inspect fetches URLs and reports which robots rules apply to
// them. It glues the pieces together: the HTTP fetch, header collection,
// meta tag extraction and the header parser.
package inspect

import (
	"context"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"xrobots/lib/restyutil"
	"xrobots/lib/telemetry"
	"xrobots/lib/urlutil"
)

var tracer = otel.Tracer("lib/inspect")

// DefaultUserAgent identifies the tool when the caller does not impersonate
// a specific bot.
const DefaultUserAgent = "xrobots/1.0"

type ClientOptions struct {
	// UserAgent is sent with requests and matched against header scopes.
	// Empty means DefaultUserAgent.
	UserAgent string
	// Timeout covers a whole fetch including redirects. Defaults to 30s.
	Timeout time.Duration
	// BypassBotProtection routes requests through a transport that gets
	// past cloudflare's bot check, for sites that block plain clients.
	BypassBotProtection bool
	// RequestsPerSecond throttles outgoing requests. 0 means unlimited.
	RequestsPerSecond float64
	// MaxBodyBytes caps how much of a response body is kept for meta tag
	// extraction. Defaults to 2 MiB.
	MaxBodyBytes int64
	// SkipMetaTags disables html meta tag extraction, leaving only the
	// response headers.
	SkipMetaTags bool
}

type Client struct {
	Http *resty.Client

	opts ClientOptions
	now  func() time.Time
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 2 << 20
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	if opts.BypassBotProtection {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.RequestsPerSecond > 0 {
		// burst of at least 1 so requests queue instead of being dropped
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "lib/inspect/http")

	return &Client{
		Http: client,
		opts: opts,
		now:  time.Now,
	}, nil
}

// SetDebugOutput mirrors full request/response transcripts to the output,
// see restyutil.CaptureTranscripts.
func (c *Client) SetDebugOutput(output restyutil.TranscriptOutput) {
	restyutil.CaptureTranscripts(c.Http, output)
}

// Fetched is the robots-relevant slice of one HTTP response.
type Fetched struct {
	// RequestedURL is the normalized target the fetch started from,
	// FinalURL is where redirects landed.
	RequestedURL string
	FinalURL     string
	StatusCode   int
	ContentType  string
	// HeaderLines holds every X-Robots-Tag occurrence as a raw header
	// line, in response order.
	HeaderLines []string
	// Body is the response body, truncated to MaxBodyBytes.
	Body []byte
}

// Fetch performs the GET and collects robots headers. The target URL is
// normalized first; a target that does not survive normalization is a
// hard error since there is nothing else to work with.
func (c *Client) Fetch(ctx context.Context, target string) (*Fetched, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	normalized, err := urlutil.Normalize(target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid target url")
		return nil, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(normalized)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	fetched := &Fetched{
		RequestedURL: normalized,
		FinalURL:     normalized,
		StatusCode:   res.StatusCode(),
		ContentType:  res.Header().Get("Content-Type"),
	}
	if res.RawResponse != nil &&
		res.RawResponse.Request != nil &&
		res.RawResponse.Request.URL != nil {
		fetched.FinalURL = res.RawResponse.Request.URL.String()
	}
	for _, value := range res.Header().Values("X-Robots-Tag") {
		fetched.HeaderLines = append(fetched.HeaderLines, "X-Robots-Tag: "+value)
	}

	body := res.Body()
	if int64(len(body)) > c.opts.MaxBodyBytes {
		body = body[:c.opts.MaxBodyBytes]
	}
	fetched.Body = body

	span.SetAttributes(
		attribute.String("url", fetched.FinalURL),
		attribute.Int("status", fetched.StatusCode),
		attribute.Int("robots_headers", len(fetched.HeaderLines)),
	)
	return fetched, nil
}
