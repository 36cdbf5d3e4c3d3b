// Package robotsapi exposes the inspection engine over a small JSON HTTP
// API, for dashboards and batch tooling that do not want to shell out to
// the cli.
package robotsapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"xrobots/lib/inspect"
	"xrobots/lib/robotstag"
	"xrobots/lib/urlutil"
)

var tracer = otel.Tracer("services/robotsapi")

type Service struct {
	client *inspect.Client
}

func NewService(client *inspect.Client) Service {
	return Service{client: client}
}

func (s Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/v1/directives", s.handleDirectives)
	mux.HandleFunc("GET /api/v1/directives/{name}", s.handleDirective)
	mux.HandleFunc("POST /api/v1/inspect", s.handleInspect)
	mux.HandleFunc("POST /api/v1/parse", s.handleParse)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (s Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type directiveInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Meaning string `json:"meaning"`
}

func (s Service) handleDirectives(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "Directives")
	defer span.End()

	out := make([]directiveInfo, 0, len(robotstag.Directives()))
	for _, directive := range robotstag.Directives() {
		meaning, err := robotstag.Meaning(string(directive))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "directive table inconsistent")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, directiveInfo{
			Name:    string(directive),
			Kind:    directive.Kind().String(),
			Meaning: meaning,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]directiveInfo{"directives": out})
}

func (s Service) handleDirective(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "Directive")
	defer span.End()

	name := r.PathValue("name")
	span.SetAttributes(attribute.String("name", name))

	meaning, err := robotstag.Meaning(name)
	if errors.Is(err, robotstag.ErrUnknownDirective) {
		span.SetStatus(codes.Error, "unknown directive")
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "meaning lookup failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	directive, _ := robotstag.Lookup(name)
	writeJSON(w, http.StatusOK, directiveInfo{
		Name:    string(directive),
		Kind:    directive.Kind().String(),
		Meaning: meaning,
	})
}

type inspectRequest struct {
	Url       string `json:"url"`
	UserAgent string `json:"user_agent"`
}

func (s Service) handleInspect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Inspect")
	defer span.End()

	var req inspectRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}
	if req.Url == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	span.SetAttributes(
		attribute.String("url", req.Url),
		attribute.String("user_agent", req.UserAgent),
	)

	// reject bad urls before spending a fetch on them
	_, err = urlutil.Normalize(req.Url)
	if err != nil {
		span.SetStatus(codes.Error, "invalid url")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.client.Inspect(ctx, req.Url, req.UserAgent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inspect failed")
		writeError(w, http.StatusBadGateway, "inspect failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

type parseRequest struct {
	Url       string   `json:"url"`
	Headers   []string `json:"headers"`
	UserAgent string   `json:"user_agent"`
}

func (s Service) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "Parse")
	defer span.End()

	var req parseRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body: "+err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("headers", len(req.Headers)),
		attribute.String("user_agent", req.UserAgent),
	)

	report := inspect.ParseHeaders(ctx, inspect.ParseRequest{
		URL:       req.Url,
		Headers:   req.Headers,
		UserAgent: req.UserAgent,
	})
	writeJSON(w, http.StatusOK, report)
}
