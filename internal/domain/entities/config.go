package entities

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FailurePolicy decides what a per-lesson I/O error does to the run
type FailurePolicy string

const (
	// FailurePolicyAbort stops the whole run on the first lesson error
	FailurePolicyAbort FailurePolicy = "abort"
	// FailurePolicySkip logs the lesson error and continues with the next lesson
	FailurePolicySkip FailurePolicy = "skip"
)

// Config represents the complete application configuration.
// It is built once at startup and passed to every component that needs it.
type Config struct {
	// BaseDirectory is the working directory every relative setting resolves against
	BaseDirectory string `mapstructure:"-" toml:"-"`

	RevealDirectory  string `mapstructure:"revealDirectory" toml:"revealDirectory"`
	LessonsDirectory string `mapstructure:"lessonsDirectory" toml:"lessonsDirectory"`
	// LessonsFileRegex is a file name glob despite its historical name
	LessonsFileRegex string `mapstructure:"lessonsFileRegex" toml:"lessonsFileRegex"`
	Template         string `mapstructure:"template" toml:"template"`

	MaxSlideLines   int           `mapstructure:"maxSlideLines" toml:"maxSlideLines"`
	MaxDepth        int           `mapstructure:"maxDepth" toml:"maxDepth"`
	OnError         FailurePolicy `mapstructure:"onError" toml:"onError"`
	FrameworkMarker string        `mapstructure:"frameworkMarker" toml:"frameworkMarker"`

	LogLevel string `mapstructure:"logLevel" toml:"logLevel"`

	ServeHost       string `mapstructure:"serveHost" toml:"serveHost"`
	ServePort       int    `mapstructure:"servePort" toml:"servePort"`
	WatchIntervalMs int    `mapstructure:"watchIntervalMs" toml:"watchIntervalMs"`
	CORSOrigins     string `mapstructure:"corsOrigins" toml:"corsOrigins"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if c.RevealDirectory == "" {
		return errors.New("revealDirectory is required")
	}

	if c.LessonsDirectory == "" {
		return errors.New("lessonsDirectory is required")
	}

	if strings.TrimSpace(c.LessonsFileRegex) == "" {
		return errors.New("lessonsFileRegex is required")
	}

	if c.Template == "" {
		return errors.New("template is required")
	}

	if c.MaxSlideLines < 0 {
		return errors.New("maxSlideLines must be non-negative")
	}

	if c.MaxDepth < 1 {
		return errors.New("maxDepth must be at least 1")
	}

	switch c.OnError {
	case FailurePolicyAbort, FailurePolicySkip:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid onError policy: %s (must be abort or skip)", c.OnError)
	}

	switch LogLevel(c.LogLevel) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.ServePort < 0 || c.ServePort > 65535 {
		return errors.New("servePort must be between 0 and 65535")
	}

	if c.WatchIntervalMs < 0 {
		return errors.New("watchIntervalMs must be non-negative")
	}

	for _, origin := range c.GetCORSOrigins() {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// resolve joins a setting onto the base directory
func (c *Config) resolve(p string) string {
	return filepath.Join(c.BaseDirectory, p)
}

// RevealDir returns the output directory for generated pages
func (c *Config) RevealDir() string {
	return c.resolve(c.RevealDirectory)
}

// LessonsDir returns the root directory scanned for lesson files
func (c *Config) LessonsDir() string {
	return c.resolve(c.LessonsDirectory)
}

// TemplatePath returns the path of the HTML template
func (c *Config) TemplatePath() string {
	return c.resolve(c.Template)
}

// FrameworkMarkerPath returns the file whose presence proves the framework is checked out
func (c *Config) FrameworkMarkerPath() string {
	return filepath.Join(c.RevealDir(), c.FrameworkMarker)
}

// GetFailurePolicy returns the failure policy with default
func (c *Config) GetFailurePolicy() FailurePolicy {
	if c.OnError == "" {
		return FailurePolicyAbort
	}
	return c.OnError
}

// GetLogLevel returns the log level with default
func (c *Config) GetLogLevel() LogLevel {
	if c.LogLevel == "" {
		return LogLevelInfo
	}
	return LogLevel(c.LogLevel)
}

// GetWatchInterval returns the watcher polling interval as a duration
func (c *Config) GetWatchInterval() time.Duration {
	if c.WatchIntervalMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.WatchIntervalMs) * time.Millisecond
}

// GetCORSOrigins returns the configured CORS origins
func (c *Config) GetCORSOrigins() []string {
	if strings.TrimSpace(c.CORSOrigins) == "" {
		return nil
	}

	parts := strings.Split(c.CORSOrigins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
