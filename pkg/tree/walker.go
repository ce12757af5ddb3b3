/*
Package tree prints a depth-bounded directory tree as it walks.

Each child is written on its own line:

	├──> src
	│    ├──> main.go
	│    ├──> *build.sh
	├──> README.md

A leading "*" marks an executable file. The caller prints the root line.
*/
package tree

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sonemaro/btrls/pkg/entry"
	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/sonemaro/btrls/pkg/palette"
	"github.com/spf13/afero"
)

const (
	// Branch precedes every child name
	Branch = "├──> "
	// Continuation extends the prefix for each level of descent
	Continuation = "│    "
	// ExecMarker is placed before the name of an executable file
	ExecMarker = "*"
)

// Walker writes tree lines to an io.Writer.
type Walker struct {
	fs     afero.Fs
	out    io.Writer
	colors *palette.ColorConfig
	log    logger.Logger
}

// NewWalker creates a Walker. colors may be nil for plain output.
func NewWalker(fs afero.Fs, out io.Writer, colors *palette.ColorConfig, log logger.Logger) *Walker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Walker{fs: fs, out: out, colors: colors, log: log}
}

type frame struct {
	path   string
	name   string
	depth  int
	prefix string
}

// Walk prints the children of root. Directories at depth d are expanded
// while d < maxDepth, so maxDepth 0 prints only the immediate children.
// Unreadable directories end their branch silently; only write failures and
// cancellation are returned.
func (w *Walker) Walk(ctx context.Context, root string, maxDepth int, showHidden bool) error {
	stack := w.children(root, 0, "", showHidden)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info, err := w.fs.Stat(item.path)
		if err != nil {
			w.log.WithFields(logger.Fields{
				"path":  item.path,
				"error": err,
			}).Debug("Skipping entry without metadata")
			continue
		}

		exec := !info.IsDir() && info.Mode().Perm()&0111 != 0
		if _, err := fmt.Fprintln(w.out, item.prefix+Branch+w.label(item.name, info.IsDir(), exec)); err != nil {
			return fmt.Errorf("write tree line: %w", err)
		}

		if info.IsDir() && item.depth < maxDepth {
			stack = append(stack, w.children(item.path, item.depth+1, item.prefix+Continuation, showHidden)...)
		}
	}

	return nil
}

// children returns the visible children of dir in reverse enumeration order,
// ready to be pushed onto the stack.
func (w *Walker) children(dir string, depth int, prefix string, showHidden bool) []frame {
	f, err := w.fs.Open(dir)
	if err != nil {
		w.log.WithFields(logger.Fields{
			"path":  dir,
			"error": err,
		}).Debug("Directory cannot be opened")
		return nil
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		w.log.WithFields(logger.Fields{
			"path":  dir,
			"error": err,
		}).Debug("Directory cannot be read")
		return nil
	}

	frames := make([]frame, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if !showHidden && entry.IsHidden(name) {
			continue
		}
		frames = append(frames, frame{
			path:   filepath.Join(dir, name),
			name:   entry.DisplayName(name),
			depth:  depth,
			prefix: prefix,
		})
	}

	w.log.WithFields(logger.Fields{
		"path":     dir,
		"depth":    depth,
		"children": len(frames),
	}).Trace("Expanded directory")

	return frames
}

func (w *Walker) label(name string, isDir, exec bool) string {
	hidden := entry.IsHidden(name)
	if exec {
		name = ExecMarker + name
	}
	if w.colors == nil {
		return name
	}

	var c palette.RGB
	switch {
	case hidden:
		c = w.colors.Hidden
	case exec:
		c = w.colors.Executable
	case isDir:
		c = w.colors.Directory
	default:
		return name
	}
	return color.RGB(int(c.R), int(c.G), int(c.B)).Sprint(name)
}
