package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/focus-beacon/internal/cli"
	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/service/client"
	"github.com/oshokin/focus-beacon/internal/version"
)

// cfgPath stores the configuration file path.
var cfgPath string

// rootCmd groups the focus-mark subcommands.
var rootCmd = &cobra.Command{
	Use:   "focus-mark",
	Short: "Publish or inspect the distraction status on the focus server.",
	Long: `Publishes the distraction signal to the focus server over gRPC.

The request is retried every second until the server confirms it.
The server address can be provided as argument or loaded from the configuration file.`,
}

// markCommand builds a subcommand that publishes distracted.
func markCommand(use, short string, distracted bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [server-address]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return client.Run(ctx, &client.Options{
				ConfigPath:    cfgPath,
				ServerAddress: firstArg(args),
				Distracted:    distracted,
			})
		},
	}
}

// statusCmd prints the current status.
var statusCmd = &cobra.Command{
	Use:   "status [server-address]",
	Short: "Print the current status.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		formatted, err := client.Show(ctx, &client.Options{
			ConfigPath:    cfgPath,
			ServerAddress: firstArg(args),
		})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), formatted)

		return err
	},
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return ""
}

// Execute runs the focus-mark CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	cli.AttachLogLevelFlag(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")

	rootCmd.AddCommand(
		markCommand("distracted", "Mark the user as distracted.", true),
		markCommand("focused", "Mark the user as focused.", false),
		statusCmd,
	)
}
