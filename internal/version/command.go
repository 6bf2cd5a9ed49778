package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand attaches a `version` subcommand to root and
// sets root's --version output to the short form.
func AttachCobraVersionCommand(root *cobra.Command) {
	var short bool

	root.Version = Short()

	command := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long:  "Print the version, the commit and build time injected through ldflags, and the Go runtime and platform.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), Short())

				return
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full())
		},
	}
	command.Flags().BoolVar(&short, "short", false, "print only the version number")

	root.AddCommand(command)
}
