package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envLogLevel                 = "BUILDGRAPH_LOG_LEVEL"
	envLogFormat                = "BUILDGRAPH_LOG_FORMAT"
	envBuildProjectDependencies = "BUILDGRAPH_BUILD_PROJECT_DEPENDENCIES"
	envSelectionCacheSize       = "BUILDGRAPH_SELECTION_CACHE_SIZE"
	envWatchPort                = "BUILDGRAPH_WATCH_PORT"
)

type Config struct {
	LogLevel  string
	LogFormat string

	// BuildProjectDependencies enables tracking of the build work that local project
	// artifacts need before they can be used.
	BuildProjectDependencies bool

	SelectionCacheSize int
	WatchPort          int
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogLevel:                 "info",
		LogFormat:                "text",
		BuildProjectDependencies: true,
		SelectionCacheSize:       64,
		WatchPort:                4900,
	}
}

// Load reads a .env file from the working directory if there is one, then applies
// the environment on top of the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv applies the variables returned by getenv on top of the defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(getenv(envLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(envLogFormat)); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(envBuildProjectDependencies)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", envBuildProjectDependencies, v, err)
		}
		cfg.BuildProjectDependencies = b
	}

	var err error
	if cfg.SelectionCacheSize, err = positiveInt(getenv, envSelectionCacheSize, cfg.SelectionCacheSize); err != nil {
		return nil, err
	}
	if cfg.WatchPort, err = positiveInt(getenv, envWatchPort, cfg.WatchPort); err != nil {
		return nil, err
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid %s %q (valid options: text, json)", envLogFormat, cfg.LogFormat)
	}
	return cfg, nil
}

func positiveInt(getenv func(string) string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return n, nil
}
