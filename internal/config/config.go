package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the focus beacon binaries.
type Config struct {
	// ServerAddress is the gRPC address of the status server control API.
	ServerAddress string `yaml:"server_addr"`
	// StatusListenAddress is where the status server exposes GET /status.
	StatusListenAddress string `yaml:"status_listen_addr"`
	// StatusURL is the status endpoint polled by the notifier.
	StatusURL string `yaml:"status_url"`
	// StateFile is the path to the JSON file storing the published status.
	StateFile string `yaml:"state_file"`
	// Timeout bounds every network call (status poll and RPC).
	Timeout time.Duration `yaml:"timeout"`
	// Poll controls the recurring status check.
	Poll PollConfig `yaml:"poll"`
	// Blink controls the blink effect shown while distracted.
	Blink BlinkConfig `yaml:"blink"`
	// Renderer selects how the icon is shown: tray, console or log.
	Renderer string `yaml:"renderer"`
}

// PollConfig holds the schedule of the status check.
type PollConfig struct {
	// InitialDelay is the wait before the first scheduled poll.
	// An immediate poll is issued on start regardless.
	InitialDelay time.Duration `yaml:"initial_delay"`
	// Interval is the period between scheduled polls.
	Interval time.Duration `yaml:"interval"`
}

// BlinkConfig holds the blink cadence.
type BlinkConfig struct {
	// Interval is the period of the icon toggle.
	Interval time.Duration `yaml:"interval"`
	// Duration is how long one blink session lasts unless refreshed.
	Duration time.Duration `yaml:"duration"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "focus-beacon-settings.yaml"

	// DefaultStateFilename is the default filename for the published status JSON.
	DefaultStateFilename = "focus-beacon-state.json"

	// DefaultServerAddress is the default gRPC control address.
	DefaultServerAddress = "127.0.0.1:50051"

	// DefaultStatusListenAddress is the default listen address of GET /status.
	DefaultStatusListenAddress = ":5001"

	// DefaultStatusURL is the default endpoint polled by the notifier.
	DefaultStatusURL = "http://localhost:5001/status"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultPollInitialDelay is the default wait before the first scheduled poll.
	DefaultPollInitialDelay = 6 * time.Second

	// DefaultPollInterval is the default period between polls.
	DefaultPollInterval = 1200 * time.Millisecond

	// DefaultBlinkInterval is the default icon toggle period.
	DefaultBlinkInterval = 300 * time.Millisecond

	// DefaultBlinkDuration is the default length of a blink session.
	DefaultBlinkDuration = 2100 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600
)

// Renderer names accepted in Config.Renderer.
const (
	RendererTray    = "tray"
	RendererConsole = "console"
	RendererLog     = "log"
)

// Environment variables overriding values read from the YAML file.
const (
	EnvStatusURL     = "FOCUS_BEACON_STATUS_URL"
	EnvServerAddress = "FOCUS_BEACON_SERVER_ADDR"
	EnvPollInterval  = "FOCUS_BEACON_POLL_INTERVAL"
	EnvBlinkInterval = "FOCUS_BEACON_BLINK_INTERVAL"
	EnvBlinkDuration = "FOCUS_BEACON_BLINK_DURATION"
	EnvRenderer      = "FOCUS_BEACON_RENDERER"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnsupportedScheme is returned when the status URL is not http(s).
	errUnsupportedScheme = errors.New("status URL must use http or https")
	// errNegativeDuration is returned when a timing value is below zero.
	errNegativeDuration = errors.New("duration must not be negative")
	// errUnknownRenderer is returned for a renderer name that is not supported.
	errUnknownRenderer = errors.New("unknown renderer")
)

// Renderers lists the supported renderer names.
func Renderers() []string {
	return []string{RendererTray, RendererConsole, RendererLog}
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		ServerAddress:       DefaultServerAddress,
		StatusListenAddress: DefaultStatusListenAddress,
		StatusURL:           DefaultStatusURL,
		StateFile:           DefaultStateFilename,
		Timeout:             DefaultTimeout,
		Poll: PollConfig{
			InitialDelay: DefaultPollInitialDelay,
			Interval:     DefaultPollInterval,
		},
		Blink: BlinkConfig{
			Interval: DefaultBlinkInterval,
			Duration: DefaultBlinkDuration,
		},
		Renderer: RendererTray,
	}
}

// Load reads configuration from the provided path, applies environment
// overrides and validates the result. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Keep defaults.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = applyEnv(cfg); err != nil {
		return nil, err
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes Config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills zero values with defaults.
//
//nolint:cyclop // A flat list of field checks reads better than helpers.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		settings.ServerAddress = DefaultServerAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.StatusListenAddress == "" {
		settings.StatusListenAddress = DefaultStatusListenAddress
	}

	if settings.StatusURL == "" {
		settings.StatusURL = DefaultStatusURL
	}

	if err := ValidateStatusURL(settings.StatusURL); err != nil {
		return err
	}

	if settings.StateFile == "" {
		settings.StateFile = DefaultStateFilename
	}

	durations := []struct {
		name     string
		value    *time.Duration
		fallback time.Duration
	}{
		{"timeout", &settings.Timeout, DefaultTimeout},
		{"poll.initial_delay", &settings.Poll.InitialDelay, DefaultPollInitialDelay},
		{"poll.interval", &settings.Poll.Interval, DefaultPollInterval},
		{"blink.interval", &settings.Blink.Interval, DefaultBlinkInterval},
		{"blink.duration", &settings.Blink.Duration, DefaultBlinkDuration},
	}

	for _, d := range durations {
		if *d.value < 0 {
			return fmt.Errorf("%s: %w", d.name, errNegativeDuration)
		}

		if *d.value == 0 {
			*d.value = d.fallback
		}
	}

	if settings.Renderer == "" {
		settings.Renderer = RendererTray
	}

	if !slices.Contains(Renderers(), settings.Renderer) {
		return fmt.Errorf("%w %q", errUnknownRenderer, settings.Renderer)
	}

	return nil
}

// ValidateStatusURL checks that raw is an absolute http(s) URL.
func ValidateStatusURL(raw string) error {
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("invalid status URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: %q", errUnsupportedScheme, raw)
	}

	return nil
}

// applyEnv overrides settings with FOCUS_BEACON_* environment variables.
func applyEnv(cfg *Config) error {
	if value := os.Getenv(EnvStatusURL); value != "" {
		cfg.StatusURL = value
	}

	if value := os.Getenv(EnvServerAddress); value != "" {
		cfg.ServerAddress = value
	}

	if value := os.Getenv(EnvRenderer); value != "" {
		cfg.Renderer = value
	}

	durations := map[string]*time.Duration{
		EnvPollInterval:  &cfg.Poll.Interval,
		EnvBlinkInterval: &cfg.Blink.Interval,
		EnvBlinkDuration: &cfg.Blink.Duration,
	}

	for name, target := range durations {
		value := os.Getenv(name)
		if value == "" {
			continue
		}

		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}

		*target = parsed
	}

	return nil
}
