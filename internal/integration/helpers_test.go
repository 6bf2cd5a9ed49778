package integration

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/service/server"
)

// testServer is a focus-server running in the background of a test.
type testServer struct {
	// GRPCAddress is the control API address.
	GRPCAddress string
	// StatusURL is the GET /status endpoint.
	StatusURL string
	// StatePath is the persisted status file.
	StatePath string
	// ConfigPath is the settings file shared with clients in the test.
	ConfigPath string
}

// reservePort returns a free local TCP address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// startServer runs focus-server with a temporary config and returns once
// GET /status answers. The server stops when the test ends.
func startServer(t *testing.T, statePath string) *testServer {
	t.Helper()

	grpcAddress := reservePort(t)
	statusAddress := reservePort(t)

	ts := &testServer{
		GRPCAddress: grpcAddress,
		StatusURL:   "http://" + statusAddress + "/status",
		StatePath:   statePath,
		ConfigPath:  filepath.Join(t.TempDir(), "settings.yaml"),
	}

	require.NoError(t, config.Save(ts.ConfigPath, &config.Config{
		ServerAddress:       grpcAddress,
		StatusListenAddress: statusAddress,
		StatusURL:           ts.StatusURL,
		StateFile:           statePath,
		Timeout:             time.Second,
		Renderer:            config.RendererLog,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{
			ConfigPath:    ts.ConfigPath,
			ListenAddress: grpcAddress,
		})
	}()

	t.Cleanup(func() {
		cancel()

		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				t.Errorf("server stopped with error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	require.Eventually(t, func() bool {
		response, err := http.Get(ts.StatusURL) //nolint:noctx // Readiness probe.
		if err != nil {
			return false
		}

		_ = response.Body.Close()

		return response.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	return ts
}
