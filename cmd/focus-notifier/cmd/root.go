package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/focus-beacon/internal/cli"
	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/service/notifier"
	"github.com/oshokin/focus-beacon/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// renderer overrides the configured renderer.
	renderer string
	// allowMultiple disables the single-instance check.
	allowMultiple bool

	// rootCmd represents the base command for the notifier.
	rootCmd = &cobra.Command{
		Use:   "focus-notifier [status-url]",
		Short: "Blink an icon while the status source reports distraction.",
		Long: `Polls the status endpoint and blinks an alert icon while it reports {"distracted": true}.

The first check runs right away, then every poll.interval after poll.initial_delay.
Each distracted report starts or extends a short blink session; any other
outcome (not distracted, unreachable or malformed source) shows the normal icon.
The status URL can be provided as argument to override the configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var statusURL string
			if len(args) > 0 {
				statusURL = args[0]
			}

			return notifier.Run(ctx, &notifier.Options{
				ConfigPath:             configPath,
				StatusURL:              statusURL,
				Renderer:               renderer,
				AllowMultipleInstances: allowMultiple,
			})
		},
	}
)

// Execute runs the focus-notifier CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	cli.AttachLogLevelFlag(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&renderer, "renderer", "r", "",
		fmt.Sprintf("icon renderer: %s (default from config)", strings.Join(config.Renderers(), ", ")))
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "skip the single-instance check")

	err := rootCmd.Flags().MarkHidden("allow-multiple")
	if err != nil {
		panic(err)
	}
}
