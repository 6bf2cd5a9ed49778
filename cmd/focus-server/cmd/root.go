package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/focus-beacon/internal/cli"
	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/service/server"
	"github.com/oshokin/focus-beacon/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the status is persisted.
	stateFile string
	// statusListenAddress overrides the HTTP status listen address.
	statusListenAddress string

	// rootCmd represents the base command for running the status server.
	rootCmd = &cobra.Command{
		Use:   "focus-server [listen-address]",
		Short: "Serve the distraction status over HTTP and gRPC.",
		Long: `Starts the focus status server.

GET /status answers {"distracted": bool, ...} for focus-notifier and any other poller.
The gRPC FocusService lets detectors and focus-mark publish the signal.
Only the port from server_addr is used for the gRPC listener (e.g., :50051);
the argument overrides it (e.g., :9090, 0.0.0.0:8080).
The status is persisted to a JSON file and restored on restart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:          configPath,
				ListenAddress:       listenAddress,
				StatusListenAddress: statusListenAddress,
				StateFile:           stateFile,
			})
		},
	}
)

// Execute runs the focus-server CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&stateFile, "state-file", "s", "", "path to persist the status (default from config)")
	rootCmd.Flags().StringVar(&statusListenAddress, "status-listen", "", "listen address of GET /status (default from config)")
}
