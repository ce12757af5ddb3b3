/*
Package logger wraps uber-go/zap behind a small interface used by every btrls
component.

Basic Usage:

	log := logger.NewLogger(logger.Config{
	    Verbosity: 0,
	    Quiet:     true,
	    Console:   true,
	})

	log.Warn("Config file could not be read")
	log.Debug("Entry skipped")      // Only shown with verbosity >= 1
	log.Trace("Visiting directory") // Only shown with verbosity >= 2

Verbosity Levels:

	0: Info, Warn, Error (Warn, Error when Quiet is set)
	1: Debug + Level 0
	2: Trace + Level 1

Structured Logging:

	log.WithFields(logger.Fields{
	    "component": "listing",
	    "path":      "/some/path",
	    "entries":   42,
	}).Debug("Directory assembled")

The CLI logs to stderr so that table, JSON and YAML output on stdout stays
clean. Components constructed without a logger fall back to NewNop.
*/
package logger
