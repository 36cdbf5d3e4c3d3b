package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"xrobots/cmd/robotstag-cli/commands"
	"xrobots/lib/serviceutil"
	"xrobots/lib/telemetry"
)

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func main() {
	ctx := context.Background()

	t, err := telemetry.SetupFromEnv(ctx, "robotstag-cli")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer t.Shutdown(context.Background())

	initSlog(os.Getenv("ROBOTSTAG_DEBUG") != "")
	commands.ExecuteContext(ctx)
}
