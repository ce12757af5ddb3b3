/*
Package output renders listings as a colored table, JSON or YAML.

Basic usage:

	formatter := output.NewFormatter(output.Config{
		Format:  output.FormatTable,
		Palette: palette.Builtin(),
	}, log)

	result, err := formatter.Format(entries)
*/
package output

import (
	"fmt"

	"github.com/sonemaro/btrls/pkg/entry"
	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/sonemaro/btrls/pkg/palette"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Config holds formatter configuration
type Config struct {
	Format  Format
	NoColor bool
	Palette palette.ColorConfig
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format([]entry.Entry) (string, error)
}

// formatter implements the Formatter interface
type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	if log == nil {
		log = logger.NewNop()
	}
	return &formatter{
		config: config,
		log:    log,
	}
}

// Format renders the entries according to the configured format
func (f *formatter) Format(entries []entry.Entry) (string, error) {
	if entries == nil {
		msg := "nil listing provided for formatting"
		f.log.Error(msg)
		return "", fmt.Errorf("%s", msg)
	}

	f.log.WithFields(logger.Fields{
		"format":  f.config.Format,
		"entries": len(entries),
		"noColor": f.config.NoColor,
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatTable:
		return f.formatTable(entries)
	case FormatJSON:
		return f.formatJSON(entries)
	case FormatYAML:
		return f.formatYAML(entries)
	default:
		msg := fmt.Sprintf("unsupported format: %s", f.config.Format)
		f.log.Error(msg)
		return "", fmt.Errorf("%s", msg)
	}
}
