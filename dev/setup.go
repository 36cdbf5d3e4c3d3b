package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

func cmd(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fullCmd := name
	for _, a := range args {
		fullCmd += " "
		fullCmd += a
	}

	fmt.Printf("$ %s\n", fullCmd)
	err := cmd.Run()
	if err != nil {
		os.Exit(1)
	}
}

const jaegerContainer = "xrobots-jaeger"

// CreateLocalStack runs a local jaeger instance that accepts OTLP traces
// and metrics, so spans produced by the cli/daemon/tests can be browsed
// at http://localhost:16686.
func CreateLocalStack() error {
	// best-effort removal of an instance left over from a previous run
	exec.Command("docker", "rm", "-f", jaegerContainer).Run()

	cmd(
		"docker", "run", "-d",
		"--name", jaegerContainer,
		"-p", "16686:16686",
		"-p", "4317:4317",
		"-p", "4318:4318",
		"jaegertracing/all-in-one:1.58",
	)
	return nil
}

const sampleTelemetryConfig = `{
  otlp: {
    traces: { http_endpoint: "http://localhost:4318" },
    metrics: { http_endpoint: "http://localhost:4318" },
  },
}
`

const sampleDaemonConfig = `{
  port: 8080,
  // leave empty to disable authentication
  access_token: "",
  fetch: {
    user_agent: "",
    timeout_seconds: 30,
    requests_per_second: 4,
  },
}
`

const sampleLiveInspectConfig = `{
  // urls expected to answer with an X-Robots-Tag header
  targets: [],
  user_agent: "",
  bypass_bot_protection: false,
}
`

func writeIfMissing(path, contents string) error {
	_, err := os.Stat(path)
	if err == nil {
		fmt.Println("config already exists at", path)
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	fmt.Println("writing sample config to", path)
	return os.WriteFile(path, []byte(contents), 0666)
}

func WriteSampleConfigs() error {
	err := writeIfMissing("telemetry.json5", sampleTelemetryConfig)
	if err != nil {
		return err
	}
	err = writeIfMissing("config.json5", sampleDaemonConfig)
	if err != nil {
		return err
	}
	return writeIfMissing("dev/.state/live_inspect.json5", sampleLiveInspectConfig)
}

func PrintConfigLocations() {
	slog.Info("telemetry.json5 points the otlp exporters at the local jaeger, delete it to disable tracing")
	slog.Info("config.json5 configures the robotstagd daemon")
	slog.Info("dev/.state/live_inspect.json5 gates the live inspection tests, they skip while its target list is empty")
}
