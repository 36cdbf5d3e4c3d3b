package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"xrobots/lib/telemetry"
)

// ServerParams configures a fake origin for robots tests.
type ServerParams struct {
	Name string
	// RobotsHeaders are emitted as separate X-Robots-Tag header
	// occurrences, one per entry.
	RobotsHeaders []string
	// HTML, when set, is served as a text/html body (for meta tag
	// extraction tests). Otherwise PlainBody (default "ok") is served as
	// text/plain.
	HTML      string
	PlainBody string
	// Status defaults to 200.
	Status int
	// RedirectTo, when set, makes the root path answer with a 302 to the
	// given path; the target path then serves the configured response.
	RedirectTo string
}

type ServerResult struct {
	Server *httptest.Server
	URL    string
}

// SetupServer starts telemetry for the test and a fake origin that
// answers with the configured robots headers and body. The returned
// cleanup stops both.
func SetupServer(t testing.TB, params ServerParams) (ServerResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	status := params.Status
	if status == 0 {
		status = http.StatusOK
	}

	serve := func(w http.ResponseWriter, r *http.Request) {
		for _, value := range params.RobotsHeaders {
			w.Header().Add("X-Robots-Tag", value)
		}
		if params.HTML != "" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			fmt.Fprint(w, params.HTML)
			return
		}
		body := params.PlainBody
		if body == "" {
			body = "ok"
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}

	mux := http.NewServeMux()
	if params.RedirectTo != "" {
		target := params.RedirectTo
		mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, target, http.StatusFound)
		})
		mux.HandleFunc(target, serve)
	} else {
		mux.HandleFunc("/", serve)
	}

	server := httptest.NewServer(mux)

	return ServerResult{
			Server: server,
			URL:    server.URL,
		}, func() {
			server.Close()
			cleanup()
		}
}
