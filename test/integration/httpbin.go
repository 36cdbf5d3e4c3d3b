// Package integration holds tests that exercise the whole inspection
// pipeline against a real HTTP server in a container instead of
// in-process fakes.
package integration

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartHttpbin runs a throwaway httpbin container and returns its base
// url. httpbin echoes the query parameters of /response-headers back as
// actual response headers, which makes it a convenient stand-in for a
// server with an arbitrary X-Robots-Tag configuration.
func StartHttpbin(t testing.TB) (string, func(t testing.TB)) {
	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(
		ctx,
		testcontainers.GenericContainerRequest{
			Started: true,
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "kennethreitz/httpbin",
				ExposedPorts: []string{"80/tcp"},
				WaitingFor:   wait.ForListeningPort("80/tcp"),
			},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "80")
	if err != nil {
		t.Fatal(err)
	}
	baseUrl := fmt.Sprintf("http://%s:%s", host, port.Port())

	return baseUrl, func(t testing.TB) {
		err := container.Terminate(context.Background())
		if err != nil {
			t.Fatal(err)
		}
	}
}
