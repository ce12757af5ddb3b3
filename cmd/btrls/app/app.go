/*
Package app provides the application container for btrls. It wires the
filesystem, logger, palette, size resolver, listing assembler, tree walker
and formatters, and dispatches one listing request.

Usage:

	a := app.New(cfg)
	defer a.Shutdown()
	if err := a.Run(&app.Options{Path: "."}); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sonemaro/btrls/internal/config"
	"github.com/sonemaro/btrls/pkg/entry"
	"github.com/sonemaro/btrls/pkg/listing"
	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/sonemaro/btrls/pkg/output"
	"github.com/sonemaro/btrls/pkg/palette"
	"github.com/sonemaro/btrls/pkg/size"
	"github.com/sonemaro/btrls/pkg/tree"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// Messages printed instead of a listing.
const (
	MsgPathMissing = "Path does not exist"
	MsgReadError   = "Error Reading the Directory"
	MsgNoEntries   = "No Files or Directories found!"
	MsgNotFound    = "No such file found"
)

// Options defines one listing request
type Options struct {
	// Path to list (default ".")
	Path string

	// Export the filtered listing instead of drawing a table
	JSON bool
	YAML bool

	// Visibility flags
	All        bool
	OnlyHidden bool

	// Tree mode; RecursiveHidden also shows hidden entries
	Recursive       bool
	RecursiveHidden bool
	Depth           int

	// FileInfo describes Path itself instead of its children
	FileInfo bool

	DirectorySize bool
	ByteSize      bool
}

func (o *Options) sizeMode() entry.SizeMode {
	return entry.SizeMode{DirectorySize: o.DirectorySize, ByteSize: o.ByteSize}
}

// Option customizes an App
type Option func(*App)

// WithFs replaces the OS filesystem
func WithFs(fs afero.Fs) Option {
	return func(a *App) { a.fs = fs }
}

// WithOutput redirects the listing and log streams
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
	color  bool

	colors    palette.ColorConfig
	extractor *entry.Extractor
	assembler *listing.Assembler

	ctx     context.Context
	cancel  context.CancelFunc
	signals chan os.Signal
	done    chan struct{}
	exit    func(int)
	once    sync.Once
}

// New creates a new application instance
func New(cfg *config.Config, opts ...Option) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config:  cfg,
		fs:      afero.NewOsFs(),
		out:     os.Stdout,
		errOut:  os.Stderr,
		ctx:     ctx,
		cancel:  cancel,
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
		exit:    os.Exit,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.initLogger()
	a.initComponents()
	a.setupSignalHandling()

	a.log.WithFields(logger.Fields{
		"workers": cfg.Workers,
		"verbose": cfg.Verbose,
		"color":   a.color,
	}).Debug("Application initialized")

	return a
}

// initLogger initializes the application logger
func (a *App) initLogger() {
	a.log = logger.NewLogger(logger.Config{
		Verbosity: a.config.Verbose,
		Quiet:     a.config.Verbose == 0,
		Console:   true,
		Output:    a.errOut,
	})
}

// initComponents initializes all application components
func (a *App) initComponents() {
	a.color = !a.config.NoColor && isTerminal(a.out)

	path := a.config.ConfigPath
	if path == "" {
		path = palette.DefaultPath()
	}
	a.colors = palette.NewLoader(a.fs, a.log).Load(path)

	sizes := size.NewResolver(a.fs, size.Config{
		Workers:   a.config.Workers,
		RateLimit: a.config.RateLimit,
	}, a.log)
	a.extractor = entry.NewExtractor(a.fs, sizes, a.log)
	a.assembler = listing.NewAssembler(a.fs, a.extractor, sizes, a.log)

	a.log.Debug("Components initialized successfully")
}

// Run executes one listing request. Missing paths and empty listings print a
// message and return nil.
func (a *App) Run(opts *Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if opts.Path == "" {
		opts.Path = "."
	}

	a.log.WithFields(logger.Fields{
		"path":      opts.Path,
		"json":      opts.JSON,
		"yaml":      opts.YAML,
		"recursive": opts.Recursive || opts.RecursiveHidden,
		"fileInfo":  opts.FileInfo,
	}).Debug("Starting listing")

	exists, err := afero.Exists(a.fs, opts.Path)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"path":  opts.Path,
			"error": err,
		}).Debug("Existence check failed")
		return a.alert(MsgReadError)
	}
	if !exists {
		return a.alert(MsgPathMissing)
	}

	switch {
	case opts.JSON:
		return a.export(opts, output.FormatJSON)
	case opts.YAML:
		return a.export(opts, output.FormatYAML)
	case opts.Recursive || opts.RecursiveHidden:
		return a.tree(opts)
	case opts.FileInfo:
		return a.fileInfo(opts)
	default:
		return a.table(opts)
	}
}

func (a *App) export(opts *Options, format output.Format) error {
	entries, err := a.assembler.Collect(a.ctx, opts.Path, opts.sizeMode(), listing.VisibilityFromFlags(opts.All, opts.OnlyHidden))
	if errors.Is(err, listing.ErrNoEntries) {
		entries = []entry.Entry{}
	}
	return a.render(entries, format)
}

func (a *App) tree(opts *Options) error {
	if _, err := fmt.Fprintln(a.out, opts.Path); err != nil {
		return err
	}

	var colors *palette.ColorConfig
	if a.color {
		colors = &a.colors
	}

	err := tree.NewWalker(a.fs, a.out, colors, a.log).Walk(a.ctx, opts.Path, opts.Depth, opts.RecursiveHidden)
	if err != nil {
		return fmt.Errorf("tree walk failed: %w", err)
	}
	return nil
}

func (a *App) fileInfo(opts *Options) error {
	e, err := a.extractor.Describe(a.ctx, opts.Path, opts.sizeMode())
	if errors.Is(err, entry.ErrNotFound) {
		return a.say(MsgNotFound)
	}
	if err != nil {
		return err
	}
	return a.render([]entry.Entry{e}, output.FormatTable)
}

func (a *App) table(opts *Options) error {
	entries, err := a.assembler.Collect(a.ctx, opts.Path, opts.sizeMode(), listing.VisibilityFromFlags(opts.All, opts.OnlyHidden))
	if errors.Is(err, listing.ErrNoEntries) {
		return a.say(MsgNoEntries)
	}
	if err != nil {
		return err
	}
	return a.render(entries, output.FormatTable)
}

func (a *App) render(entries []entry.Entry, format output.Format) error {
	formatter := output.NewFormatter(output.Config{
		Format:  format,
		NoColor: !a.color,
		Palette: a.colors,
	}, a.log)

	text, err := formatter.Format(entries)
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}
	return a.say(strings.TrimRight(text, "\n"))
}

func (a *App) say(msg string) error {
	_, err := fmt.Fprintln(a.out, msg)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to write output")
	}
	return err
}

// alert prints msg in red when colors are enabled.
func (a *App) alert(msg string) error {
	c := color.New(color.FgRed)
	if a.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, err := c.Fprintln(a.out, msg)
	return err
}

// Shutdown cancels outstanding work and releases signal handlers
func (a *App) Shutdown() {
	a.once.Do(func() {
		a.cancel()
		a.stopSignalHandling()
		close(a.done)
		a.log.Debug("Shutdown complete")
	})
}

// isTerminal reports whether w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
