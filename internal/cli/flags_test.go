package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/focus-beacon/internal/logger"
)

// TestAttachLogLevelFlag checks that the flag changes the global level and rejects junk.
//
//nolint:paralleltest // Mutates the global logger level.
func TestAttachLogLevelFlag(t *testing.T) {
	previous := logger.Level()
	t.Cleanup(func() { logger.SetLevel(previous) })

	var ran bool

	root := &cobra.Command{
		Use: "focus-test",
		RunE: func(*cobra.Command, []string) error {
			ran = true

			return nil
		},
	}
	AttachLogLevelFlag(root)

	root.SetArgs([]string{"--log-level", "debug"})
	require.NoError(t, root.Execute())
	require.True(t, ran)
	require.Equal(t, zapcore.DebugLevel, logger.Level())

	root.SetArgs([]string{"--log-level", "chatty"})
	require.Error(t, root.Execute())
}
