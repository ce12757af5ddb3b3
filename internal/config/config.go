package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// ConfigPath is the color config file; empty selects the platform default
	ConfigPath string

	// Workers is the number of concurrent directory-size walks
	Workers int

	// RateLimit is the maximum number of walks started per second (0 for unlimited)
	RateLimit int

	// NoColor disables colored output
	NoColor bool

	// Verbose sets the verbosity level
	Verbose int

	// Depth is the default tree depth
	Depth int
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("config", "")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("rate_limit", 0)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", "")
	v.SetDefault("depth", DefaultDepth)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range []string{"config", "workers", "rate_limit", "no_color", "verbose", "depth"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := Config{
		ConfigPath: v.GetString("config"),
		Workers:    v.GetInt("workers"),
		RateLimit:  v.GetInt("rate_limit"),
		NoColor:    v.GetBool("no_color"),
		Verbose:    parseVerbosity(v.GetString("verbose")),
		Depth:      v.GetInt("depth"),
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// parseVerbosity accepts "2" as well as "vv".
func parseVerbosity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return strings.Count(s, "v")
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers count must be positive")
	}
	if c.Workers > runtime.NumCPU()*MaxWorkerMultiplier {
		return fmt.Errorf("workers count cannot exceed system CPU count * %d", MaxWorkerMultiplier)
	}

	if c.Depth < 0 {
		return fmt.Errorf("depth must be non-negative")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	if c.Verbose < 0 {
		return fmt.Errorf("verbosity must be non-negative")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{ConfigPath: %s, Workers: %d, RateLimit: %d, NoColor: %v, Verbose: %d, Depth: %d}",
		c.ConfigPath, c.Workers, c.RateLimit, c.NoColor, c.Verbose, c.Depth,
	)
}
