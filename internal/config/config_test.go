package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Empty settings take defaults.
	settings := new(Config)

	require.NoError(t, Validate(settings))
	require.Equal(t, Default(), settings)

	// Bad socket.
	settings = &Config{
		ServerAddress: "bad:address",
	}

	require.Error(t, Validate(settings))

	// Status URL must be absolute http(s).
	settings = &Config{
		StatusURL: "ftp://localhost/status",
	}

	require.Error(t, Validate(settings))

	settings = &Config{
		StatusURL: "localhost:5001/status",
	}

	require.Error(t, Validate(settings))

	// Negative durations are rejected.
	settings = &Config{
		Blink: BlinkConfig{Interval: -time.Second},
	}

	require.Error(t, Validate(settings))

	// Unknown renderer.
	settings = &Config{
		Renderer: "hologram",
	}

	require.Error(t, Validate(settings))

	// Okay with explicit values.
	settings = &Config{
		ServerAddress: "127.0.0.1:0",
		StatusURL:     "https://example.com/status",
		Renderer:      RendererConsole,
		Blink: BlinkConfig{
			Interval: 100 * time.Millisecond,
		},
	}

	require.NoError(t, Validate(settings))
	require.Equal(t, 100*time.Millisecond, settings.Blink.Interval)
	require.Equal(t, DefaultBlinkDuration, settings.Blink.Duration)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		ServerAddress: "127.0.0.1:50051",
		StatusURL:     "http://127.0.0.1:5001/status",
		Poll: PollConfig{
			InitialDelay: time.Second,
			Interval:     500 * time.Millisecond,
		},
		Blink: BlinkConfig{
			Interval: 250 * time.Millisecond,
			Duration: 2 * time.Second,
		},
		Renderer: RendererLog,
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingFileUsesDefaults verifies that a missing settings file is not an error.
func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	loaded, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultStatusURL, loaded.StatusURL)
	require.Equal(t, DefaultBlinkInterval, loaded.Blink.Interval)
	require.Equal(t, DefaultBlinkDuration, loaded.Blink.Duration)
}

// TestLoad_ParsesDurationStrings checks that human-readable durations in YAML are accepted.
func TestLoad_ParsesDurationStrings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	contents := []byte("status_url: http://127.0.0.1:9000/status\n" +
		"renderer: console\n" +
		"blink:\n" +
		"  interval: 150ms\n" +
		"  duration: 1.5s\n")

	require.NoError(t, os.WriteFile(path, contents, DefaultFilePermissions))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:9000/status", loaded.StatusURL)
	require.Equal(t, RendererConsole, loaded.Renderer)
	require.Equal(t, 150*time.Millisecond, loaded.Blink.Interval)
	require.Equal(t, 1500*time.Millisecond, loaded.Blink.Duration)
	require.Equal(t, DefaultPollInterval, loaded.Poll.Interval)
}

// TestLoad_EnvOverrides ensures FOCUS_BEACON_* variables win over the file.
//
//nolint:paralleltest // t.Setenv is incompatible with t.Parallel.
func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, Save(path, &Config{StatusURL: "http://127.0.0.1:1/status"}))

	t.Setenv(EnvStatusURL, "http://127.0.0.1:2/status")
	t.Setenv(EnvRenderer, RendererLog)
	t.Setenv(EnvBlinkInterval, "200ms")
	t.Setenv(EnvBlinkDuration, "3s")
	t.Setenv(EnvPollInterval, "10s")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:2/status", loaded.StatusURL)
	require.Equal(t, RendererLog, loaded.Renderer)
	require.Equal(t, 200*time.Millisecond, loaded.Blink.Interval)
	require.Equal(t, 3*time.Second, loaded.Blink.Duration)
	require.Equal(t, 10*time.Second, loaded.Poll.Interval)

	t.Setenv(EnvBlinkDuration, "soon")

	_, err = Load(path)
	require.Error(t, err)
}
