package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
	"github.com/oshokin/focus-beacon/internal/service/common"
)

// Options configures the focus-mark operations.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Distracted is the signal to publish.
	Distracted bool
	// RetryInterval is the delay between attempts. Zero means one second.
	RetryInterval time.Duration
}

// defaultPushInterval is the retry delay when pushing the status to the server.
const defaultPushInterval = 1 * time.Second

// Run publishes the signal, retrying until the server confirms it or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "focus-mark")

	client, actor, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Publishing focus status", "distracted", opts.Distracted, "actor", actor)

	// attempt tries once and reports whether the server confirmed the signal.
	attempt := func() bool {
		state, err := client.Publish(ctx, actor, opts.Distracted)

		switch {
		case errors.Is(err, common.ErrNotConfirmed):
			logger.WarnKV(ctx, "Server answered with another status", "status", FormatStatus(state))

			return false
		case err != nil:
			logger.ErrorKV(ctx, "Publish failed", "error", err)

			return false
		}

		logger.Infof(ctx, "Status updated: %s", FormatStatus(state))

		return true
	}

	if attempt() {
		return nil
	}

	interval := opts.RetryInterval
	if interval <= 0 {
		interval = defaultPushInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if attempt() {
				return nil
			}
		}
	}
}

// Show fetches the current status once and returns it formatted.
func Show(ctx context.Context, opts *Options) (string, error) {
	ctx = logger.WithName(ctx, "focus-mark")

	client, actor, err := connect(ctx, opts)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = client.Close()
	}()

	state, err := client.Status(ctx, actor)
	if err != nil {
		return "", err
	}

	return FormatStatus(state), nil
}

// connect loads the settings, detects the actor and dials the server.
func connect(ctx context.Context, opts *Options) (*common.Client, *focus.Actor, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	actor, err := common.DetectActor()
	if err != nil {
		return nil, nil, fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, err
	}

	logger.DebugKV(ctx, "Connected", "server_address", serverAddress)

	return client, actor, nil
}

// FormatStatus renders a status for humans, e.g. "distracted by dev@desk (2026-01-02T03:04:05Z)".
func FormatStatus(state *focus.State) string {
	if state == nil {
		return "<nil status>"
	}

	timestamp := "<unknown>"
	if !state.Timestamp.IsZero() {
		timestamp = state.Timestamp.Format(time.RFC3339)
	}

	label := "focused"
	if state.Distracted {
		label = "distracted"
	}

	return fmt.Sprintf("%s by %s (%s)", label, state.LastActor, timestamp)
}
