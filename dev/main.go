package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

// the dev environment is always provisioned relative to the repository
// root, running it anywhere else would scatter .state directories around
func ensureWorkspaceRoot() error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("run this from the repository root (next to go.mod)")
	}
	return err
}

func create(recreate bool) error {
	err := ensureWorkspaceRoot()
	if err != nil {
		return err
	}

	if recreate {
		slog.Info("wiping dev state")
		err = os.RemoveAll("dev/.state")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll("dev/.state", 0777)
	if err != nil {
		return err
	}

	err = CreateLocalStack()
	if err != nil {
		return err
	}
	err = WriteSampleConfigs()
	if err != nil {
		return err
	}
	PrintConfigLocations()

	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "wipe dev/.state and provision from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment is ready", "jaeger", "http://localhost:16686")
}
