// Package cli holds the flags shared by the focus-beacon commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/focus-beacon/internal/logger"
)

// AttachLogLevelFlag adds a persistent --log-level flag to root and applies
// it before any command runs.
func AttachLogLevelFlag(root *cobra.Command) {
	var level string

	root.PersistentFlags().StringVar(&level, "log-level", "info", "log level: debug, info, warn or error")

	previous := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !logger.SetLevelString(level) {
			return fmt.Errorf("unknown log level %q", strings.TrimSpace(level))
		}

		if previous != nil {
			return previous(cmd, args)
		}

		return nil
	}
}
