/*
Package commands implements the btrls command line: the root listing command
and the version subcommand.
*/
package commands

import (
	"fmt"
	"runtime"

	"github.com/sonemaro/btrls/cmd/btrls/app"
	"github.com/sonemaro/btrls/internal/config"
	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/spf13/cobra"
)

// Options holds command-line options
type Options struct {
	Config     *config.Config
	ConfigPath string
	Workers    int
	Depth      int
	Verbose    int
	NoColor    bool

	Listing app.Options

	// appOptions are passed to app.New; tests use them to swap the filesystem
	appOptions []app.Option
}

// NewRootCommand creates the root command for the application
func NewRootCommand(appOpts ...app.Option) *cobra.Command {
	opts := &Options{appOptions: appOpts}

	rootCmd := &cobra.Command{
		Use:   "btrls [flags] [path]",
		Short: "A better ls: colored tables, JSON and trees",
		Long: `btrls lists a directory as a colored table with type, size, modification
time and read-only flag for each entry, directories first.

It can also export the listing as JSON or YAML, describe a single path,
sum directory sizes recursively, or print a depth-limited tree.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListing(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v",
		"verbose output (can be used multiple times)")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false,
		"disable colored output")

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.Listing.JSON, "json", "j", false, "print the listing as JSON")
	flags.BoolVarP(&opts.Listing.YAML, "yaml", "y", false, "print the listing as YAML")
	flags.BoolVarP(&opts.Listing.All, "all", "a", false, "show hidden entries")
	flags.BoolVarP(&opts.Listing.OnlyHidden, "only-hidden", "o", false, "show only hidden entries")
	flags.BoolVarP(&opts.Listing.Recursive, "recursive", "r", false, "print sub-directories and files as a tree")
	flags.BoolVarP(&opts.Listing.RecursiveHidden, "recursive-hidden", "q", false, "print a tree including hidden entries")
	flags.IntVarP(&opts.Depth, "depth", "d", config.DefaultDepth, "tree depth")
	flags.BoolVarP(&opts.Listing.FileInfo, "file-info", "f", false, "describe the path itself")
	flags.BoolVarP(&opts.Listing.DirectorySize, "directory-size", "s", false, "sum directory sizes recursively")
	flags.BoolVarP(&opts.Listing.ByteSize, "byte-size", "b", false, "show sizes in bytes")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "color config file")
	flags.IntVarP(&opts.Workers, "workers", "w", 0, "concurrent directory-size walks (0 for CPU cores)")

	rootCmd.AddCommand(newVersionCommand(opts))

	return rootCmd
}

// initializeCommand loads the environment configuration and applies flags
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	log := logger.NewLogger(logger.Config{
		Verbosity: opts.Verbose,
		Quiet:     opts.Verbose == 0,
		Console:   true,
		Output:    cmd.ErrOrStderr(),
	})

	log.WithFields(logger.Fields{
		"verbosity": opts.Verbose,
		"command":   cmd.Name(),
	}).Debug("Initializing command")

	cfg, err := config.Load()
	if err != nil {
		log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to load configuration")
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.NoColor
	}
	if flags.Changed("config") {
		cfg.ConfigPath = opts.ConfigPath
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
		if cfg.Workers == 0 {
			cfg.Workers = runtime.NumCPU()
		}
	}
	if flags.Changed("depth") {
		cfg.Depth = opts.Depth
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	opts.Config = &cfg
	return nil
}

func runListing(cmd *cobra.Command, args []string, opts *Options) error {
	listing := opts.Listing
	listing.Path = "."
	if len(args) == 1 {
		listing.Path = args[0]
	}
	listing.Depth = opts.Config.Depth

	appOpts := append([]app.Option{app.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())}, opts.appOptions...)
	a := app.New(opts.Config, appOpts...)
	defer a.Shutdown()

	return a.Run(&listing)
}
