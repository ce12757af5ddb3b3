/*
Package entry defines the listing row model and extracts it from filesystem
metadata.

	x := entry.NewExtractor(afero.NewOsFs(), resolver, log)
	e, ok := x.Extract(ctx, "/etc", "hosts", entry.SizeMode{})
	if !ok {
		// metadata unreadable, the entry is skipped
	}
*/
package entry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/sonemaro/btrls/pkg/size"
	"github.com/spf13/afero"
)

// Extractor builds Entry values from filesystem metadata.
type Extractor struct {
	fs    afero.Fs
	sizes *size.Resolver
	log   logger.Logger
}

// NewExtractor creates an Extractor. sizes may be nil, in which case
// directory sizes are never summed.
func NewExtractor(fs afero.Fs, sizes *size.Resolver, log logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Extractor{
		fs:    fs,
		sizes: sizes,
		log:   log,
	}
}

// Extract describes dir/name. It returns false when the metadata cannot be
// read, in which case the entry must be left out of the listing.
func (x *Extractor) Extract(ctx context.Context, dir, name string, mode SizeMode) (Entry, bool) {
	path := filepath.Join(dir, name)

	info, err := x.fs.Stat(path)
	if err != nil {
		x.log.WithFields(logger.Fields{
			"path":  path,
			"error": err,
		}).Debug("Skipping entry without metadata")
		return Entry{}, false
	}

	return x.FromInfo(ctx, path, name, info, mode), true
}

// FromInfo builds an Entry from metadata that has already been read.
func (x *Extractor) FromInfo(ctx context.Context, path, name string, info os.FileInfo, mode SizeMode) Entry {
	e := Entry{
		Kind:       File,
		Name:       DisplayName(name),
		ReadOnly:   info.Mode().Perm()&0222 == 0,
		Hidden:     IsHidden(name),
		Executable: !info.IsDir() && info.Mode().Perm()&0111 != 0,
		Modified:   NoModified,
	}
	if e.Name == UnknownName {
		x.log.WithFields(logger.Fields{
			"path": path,
		}).Debug("Entry name is not valid UTF-8")
	}

	if !info.ModTime().IsZero() {
		e.Modified = info.ModTime().Local().Format(TimeLayout)
	}

	bytes := info.Size()
	if info.IsDir() {
		e.Kind = Dir
		if mode.DirectorySize && x.sizes != nil {
			bytes = x.sizes.DirSize(ctx, path)
		}
	}
	e.Size = size.Display(bytes, mode.ByteSize)

	x.log.WithFields(logger.Fields{
		"path": path,
		"kind": e.Kind.String(),
		"size": e.Size,
	}).Trace("Entry extracted")

	return e
}

// Describe returns the metadata row for a single path, file or directory.
// Any failure to read the path is reported as ErrNotFound.
func (x *Extractor) Describe(ctx context.Context, path string, mode SizeMode) (Entry, error) {
	info, err := x.fs.Stat(path)
	if err != nil {
		x.log.WithFields(logger.Fields{
			"path":  path,
			"error": err,
		}).Debug("Path cannot be described")
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	name := filepath.Base(path)
	if abs, err := filepath.Abs(path); err == nil {
		name = filepath.Base(abs)
	}

	return x.FromInfo(ctx, path, name, info, mode), nil
}
