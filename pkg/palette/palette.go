/*
Package palette resolves the six table colors from an optional TOML file.

Example btrls.toml:

	title_row    = "#ff00ff"
	leading_col  = "#00ffff"
	trailing_col = "#ffff00"
	executable   = "#0aff0a"
	directory    = "#0a0aff"
	hidden       = "#808080"

Loading never fails. A file that cannot be read or parsed yields Builtin();
a single malformed or wrong-typed field yields FieldFallback for that field
only, and an absent field is parsed from DefaultFieldHex.
*/
package palette

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// RGB is one 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorConfig holds one color per table role.
type ColorConfig struct {
	TitleRow    RGB
	LeadingCol  RGB
	TrailingCol RGB
	Executable  RGB
	Directory   RGB
	Hidden      RGB
}

// Config file keys.
const (
	KeyTitleRow    = "title_row"
	KeyLeadingCol  = "leading_col"
	KeyTrailingCol = "trailing_col"
	KeyExecutable  = "executable"
	KeyDirectory   = "directory"
	KeyHidden      = "hidden"
)

// Keys lists every config key in table order.
var Keys = []string{KeyTitleRow, KeyLeadingCol, KeyTrailingCol, KeyExecutable, KeyDirectory, KeyHidden}

// DefaultFieldHex is parsed for a field that the config file leaves out.
const DefaultFieldHex = "#0a0a0a"

// FieldFallback replaces a field whose value cannot be parsed.
var FieldFallback = RGB{R: 10, G: 10, B: 10}

// ConfigFileName is the base name of the color config file.
const ConfigFileName = "btrls.toml"

// Builtin is the palette used when no config file can be loaded.
func Builtin() ColorConfig {
	return ColorConfig{
		TitleRow:    RGB{R: 255, G: 0, B: 255},
		LeadingCol:  RGB{R: 0, G: 255, B: 255},
		TrailingCol: RGB{R: 255, G: 255, B: 0},
		Executable:  RGB{R: 10, G: 255, B: 10},
		Directory:   RGB{R: 10, G: 10, B: 255},
		Hidden:      RGB{R: 128, G: 128, B: 128},
	}
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}

	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

// DefaultPath returns the platform config location, or "" when the home
// directory is unknown.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(`\Applications`, ConfigFileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", ConfigFileName)
}

// Loader reads color configs through an afero filesystem.
type Loader struct {
	fs  afero.Fs
	log logger.Logger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(fs afero.Fs, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{fs: fs, log: log}
}

// Load resolves the palette from path. It never fails; see the package
// documentation for the fallback rules.
func (l *Loader) Load(path string) ColorConfig {
	if path == "" {
		l.log.Debug("No color config path, using builtin palette")
		return Builtin()
	}

	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	for _, key := range Keys {
		v.SetDefault(key, DefaultFieldHex)
	}

	if err := v.ReadInConfig(); err != nil {
		l.log.WithFields(logger.Fields{
			"path":  path,
			"error": err,
		}).Debug("Color config unavailable, using builtin palette")
		return Builtin()
	}

	field := func(key string) RGB {
		raw, ok := v.Get(key).(string)
		if !ok {
			l.log.WithFields(logger.Fields{
				"key":   key,
				"value": v.Get(key),
			}).Warn("Color value is not a string, using fallback")
			return FieldFallback
		}

		c, err := ParseHex(raw)
		if err != nil {
			l.log.WithFields(logger.Fields{
				"key":   key,
				"error": err,
			}).Warn("Invalid color value, using fallback")
			return FieldFallback
		}
		return c
	}

	cfg := ColorConfig{
		TitleRow:    field(KeyTitleRow),
		LeadingCol:  field(KeyLeadingCol),
		TrailingCol: field(KeyTrailingCol),
		Executable:  field(KeyExecutable),
		Directory:   field(KeyDirectory),
		Hidden:      field(KeyHidden),
	}

	l.log.WithFields(logger.Fields{
		"path": path,
	}).Debug("Color config loaded")

	return cfg
}
