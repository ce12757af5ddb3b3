/*
Package listing enumerates a directory into entry rows and filters them by
visibility.

	a := listing.NewAssembler(fs, extractor, resolver, log)
	rows, err := a.Collect(ctx, "/srv", entry.SizeMode{}, listing.Default)
	if errors.Is(err, listing.ErrNoEntries) {
		// nothing left to show
	}
*/
package listing

import (
	"context"
	"path/filepath"

	"github.com/sonemaro/btrls/pkg/entry"
	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/sonemaro/btrls/pkg/size"
	"github.com/spf13/afero"
)

// Assembler lists the immediate children of a directory, directories first.
type Assembler struct {
	fs        afero.Fs
	extractor *entry.Extractor
	sizes     *size.Resolver
	log       logger.Logger
}

// NewAssembler creates an Assembler. sizes is used for directory sums and
// may be nil when they are never requested.
func NewAssembler(fs afero.Fs, extractor *entry.Extractor, sizes *size.Resolver, log logger.Logger) *Assembler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Assembler{
		fs:        fs,
		extractor: extractor,
		sizes:     sizes,
		log:       log,
	}
}

// Assemble returns the children of dir in filesystem order, all directories
// before all files. Children whose metadata cannot be read are dropped, and
// a directory that cannot be opened yields an empty listing.
func (a *Assembler) Assemble(ctx context.Context, dir string, mode entry.SizeMode) []entry.Entry {
	names, err := a.readNames(dir)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"path":  dir,
			"error": err,
		}).Debug("Directory cannot be listed")
		return []entry.Entry{}
	}

	// directory sums are deferred so they can run together
	perEntry := entry.SizeMode{ByteSize: mode.ByteSize}

	var dirs, files []entry.Entry
	var dirPaths []string
	for _, name := range names {
		e, ok := a.extractor.Extract(ctx, dir, name, perEntry)
		if !ok {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e)
			dirPaths = append(dirPaths, filepath.Join(dir, name))
			continue
		}
		files = append(files, e)
	}

	if mode.DirectorySize && a.sizes != nil && len(dirPaths) > 0 {
		for i, total := range a.sizes.DirSizes(ctx, dirPaths) {
			dirs[i].Size = size.Display(total, mode.ByteSize)
		}
	}

	a.log.WithFields(logger.Fields{
		"path":  dir,
		"dirs":  len(dirs),
		"files": len(files),
	}).Debug("Directory assembled")

	out := make([]entry.Entry, 0, len(dirs)+len(files))
	out = append(out, dirs...)
	return append(out, files...)
}

// Collect assembles dir and applies the visibility filter. It returns
// ErrNoEntries when nothing is left to show.
func (a *Assembler) Collect(ctx context.Context, dir string, mode entry.SizeMode, visibility Visibility) ([]entry.Entry, error) {
	entries := Filter(a.Assemble(ctx, dir, mode), visibility)
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}

func (a *Assembler) readNames(dir string) ([]string, error) {
	f, err := a.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdirnames(-1)
}
