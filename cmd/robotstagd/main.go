package main

import (
	"flag"
	"log/slog"
	"net/http"
	"time"

	"xrobots/lib/configutil"
	"xrobots/lib/inspect"
	"xrobots/lib/restyutil"
	"xrobots/lib/serviceutil"
	"xrobots/services/robotsapi"
)

type FetchConfig struct {
	UserAgent           string  `json:"user_agent"`
	TimeoutSeconds      int     `json:"timeout_seconds"`
	BypassBotProtection bool    `json:"bypass_bot_protection"`
	RequestsPerSecond   float64 `json:"requests_per_second"`
	MaxBodyBytes        int64   `json:"max_body_bytes"`
	SkipMetaTags        bool    `json:"skip_meta_tags"`
}

type Config struct {
	Port        int         `json:"port"`
	AccessToken string      `json:"access_token"`
	Fetch       FetchConfig `json:"fetch"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	client, err := inspect.NewClient(inspect.ClientOptions{
		UserAgent:           cfg.Fetch.UserAgent,
		Timeout:             time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		BypassBotProtection: cfg.Fetch.BypassBotProtection,
		RequestsPerSecond:   cfg.Fetch.RequestsPerSecond,
		MaxBodyBytes:        cfg.Fetch.MaxBodyBytes,
		SkipMetaTags:        cfg.Fetch.SkipMetaTags,
	})
	if err != nil {
		serviceutil.Fatal("init inspect client", err)
	}
	if *verbose {
		client.SetDebugOutput(restyutil.NewFilesystemOutput(".dev/resty/inspect"))
	}

	mux := http.NewServeMux()
	robotsapi.NewService(client).Register(mux)

	slog.Info("listening", "port", cfg.Port)
	go serviceutil.StartHttpServer(
		cfg.Port,
		serviceutil.RequireAccessToken(cfg.AccessToken, mux),
	)
	<-ctx.Done()
}
