package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc"

	api "github.com/oshokin/focus-beacon/internal/api/grpc/focus"
	httpstatus "github.com/oshokin/focus-beacon/internal/api/http/status"
	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/logger"
	pb "github.com/oshokin/focus-beacon/internal/pb/v1"
	repository "github.com/oshokin/focus-beacon/internal/repository/state"
)

// Options controls the focus-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// StatusListenAddress provides an optional listen address override for GET /status.
	StatusListenAddress string
	// StateFile specifies the path to persist the status JSON.
	StateFile string
}

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run serves the gRPC control API and the HTTP status endpoint until ctx is
// canceled or one of them fails.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "focus-server")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	statusAddress := settings.StatusListenAddress
	if opts.StatusListenAddress != "" {
		statusAddress = opts.StatusListenAddress
	}

	svc, err := newService(ctx, repository.NewFileRepository(stateFile))
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	lc := net.ListenConfig{}

	grpcListener, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	httpListener, err := lc.Listen(ctx, "tcp", statusAddress)
	if err != nil {
		_ = grpcListener.Close()

		return fmt.Errorf("listen on %s: %w", statusAddress, err)
	}

	logger.InfoKV(ctx, "Focus server listening",
		"grpc_address", grpcListener.Addr().String(),
		"status_address", httpListener.Addr().String(),
		"state_file", stateFile)

	return serve(ctx, svc, grpcListener, httpListener)
}

// serve runs both transports on the provided listeners and stops them
// together.
func serve(ctx context.Context, svc *service, grpcListener, httpListener net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grpcServer := grpc.NewServer()
	pb.RegisterFocusServiceServer(grpcServer, api.NewServer(svc))

	httpServer := &http.Server{
		Handler:           httpstatus.NewMux(svc),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	var (
		wg       sync.WaitGroup
		errMutex sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		errMutex.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMutex.Unlock()

		cancel()
	}

	wg.Go(func() {
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			fail(fmt.Errorf("serve gRPC: %w", err))
		}
	})

	wg.Go(func() {
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fail(fmt.Errorf("serve HTTP: %w", err))
		}
	})

	<-ctx.Done()
	logger.Info(ctx, "Shutting down focus server")

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WarnKV(ctx, "HTTP server shutdown incomplete", "error", err)
	}

	wg.Wait()
	logger.Info(ctx, "Focus server stopped")

	return firstErr
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// "server.example.com:8080" -> ":8080".
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
