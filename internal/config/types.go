package config

// Constants for configuration limits and defaults
const (
	// EnvPrefix is prepended to every environment variable name
	EnvPrefix = "BTRLS"

	// DefaultDepth is the tree depth used when none is given
	DefaultDepth = 1

	// MaxWorkerMultiplier is the maximum multiple of CPU cores for worker count
	MaxWorkerMultiplier = 4
)
