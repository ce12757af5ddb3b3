// Package config loads btrls settings from the environment. Command-line
// flags are applied on top by the CLI.
//
// # Environment Variables
//
//	BTRLS_CONFIG      Color config file (default: ~/.config/btrls.toml)
//	BTRLS_WORKERS     Concurrent directory-size walks (default: CPU cores)
//	BTRLS_RATE_LIMIT  Directory-size walks started per second (0 for unlimited)
//	BTRLS_NO_COLOR    Disable colored output (true/false)
//	BTRLS_VERBOSE     Verbosity level, a number or a string of 'v's
//	BTRLS_DEPTH       Default tree depth (default: 1)
//
// # Validation
//
//   - Workers must be at least 1 and not exceed CPU cores * 4
//   - Depth must not be negative
//   - RateLimit must be non-negative
//
// Errors are descriptive, e.g. "workers count must be positive".
package config
