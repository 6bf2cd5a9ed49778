package notifier

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/focus-beacon/internal/blink"
	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
	"github.com/oshokin/focus-beacon/internal/render/console"
	"github.com/oshokin/focus-beacon/internal/render/logrender"
	"github.com/oshokin/focus-beacon/internal/render/tray"
	"github.com/oshokin/focus-beacon/internal/schedule"
	"github.com/oshokin/focus-beacon/internal/service/common"
)

// PollTriggerName names the recurring status check.
const PollTriggerName = "check-distraction-status"

// Options controls the notifier process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// StatusURL provides an optional status endpoint override.
	StatusURL string
	// Renderer provides an optional renderer override: tray, console or log.
	Renderer string
	// RendererOverride replaces the configured renderer entirely.
	RendererOverride blink.Renderer
	// AllowMultipleInstances skips the single-instance check.
	AllowMultipleInstances bool
}

// reporter produces one status report per call.
type reporter interface {
	Report(ctx context.Context) focus.Report
}

// Run loads the settings, picks the renderer and watches the status source
// until ctx is canceled or the user quits from the tray.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "focus-notifier")

	cfg, err := loadSettings(opts)
	if err != nil {
		return err
	}

	if !opts.AllowMultipleInstances {
		if err = common.EnsureSingleInstance(); err != nil {
			return err
		}
	}

	source, err := common.NewStatusClient(cfg.StatusURL, common.WithStatusTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("create status client: %w", err)
	}

	logger.InfoKV(ctx, "Watching focus status",
		"status_url", cfg.StatusURL,
		"renderer", cfg.Renderer,
		"poll_interval", cfg.Poll.Interval.String(),
		"blink_interval", cfg.Blink.Interval.String(),
		"blink_duration", cfg.Blink.Duration.String())

	if opts.RendererOverride != nil {
		return watch(ctx, cfg, source, opts.RendererOverride)
	}

	switch cfg.Renderer {
	case config.RendererTray:
		renderer, err := tray.New()
		if err != nil {
			return fmt.Errorf("create tray renderer: %w", err)
		}

		return tray.Run(ctx, func(ctx context.Context) error {
			return watch(ctx, cfg, source, renderer)
		})
	case config.RendererConsole:
		renderer := console.New(os.Stdout)

		defer func() {
			_ = renderer.Clear()
		}()

		return watch(ctx, cfg, source, renderer)
	default:
		return watch(ctx, cfg, source, logrender.New())
	}
}

// loadSettings reads the config file and applies the command line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.StatusURL != "" {
		cfg.StatusURL = opts.StatusURL
	}

	if opts.Renderer != "" {
		cfg.Renderer = opts.Renderer
	}

	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return cfg, nil
}

// watch shows the idle icon, registers the poll trigger, checks the status
// once right away and then waits for ctx. On exit the icon is reset.
func watch(ctx context.Context, cfg *config.Config, source reporter, renderer blink.Renderer) error {
	controller := blink.New(ctx, renderer, blink.Options{
		Interval: cfg.Blink.Interval,
		Duration: cfg.Blink.Duration,
	})
	controller.Reset(ctx)

	scheduler := schedule.New()

	defer func() {
		scheduler.Close()
		controller.Reset(context.WithoutCancel(ctx))
		logger.Info(ctx, "Focus notifier stopped")
	}()

	poll := func(ctx context.Context) {
		controller.OnStatusReport(ctx, source.Report(ctx))
	}

	trigger := schedule.Trigger{
		Name:   PollTriggerName,
		Delay:  cfg.Poll.InitialDelay,
		Period: cfg.Poll.Interval,
	}

	created, err := scheduler.Ensure(ctx, trigger, poll)
	if err != nil {
		return fmt.Errorf("schedule status checks: %w", err)
	}

	if active, ok := scheduler.Get(trigger.Name); ok {
		logger.DebugKV(ctx, "Poll trigger active",
			"trigger", active.Name,
			"created", created,
			"delay", active.Delay,
			"period", active.Period,
		)
	}

	poll(ctx)

	<-ctx.Done()

	return nil
}
