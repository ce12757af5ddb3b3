package size

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sonemaro/btrls/pkg/logger"
	"github.com/sonemaro/btrls/pkg/worker"
	"github.com/spf13/afero"
)

// Config controls how many directory sums run at once.
type Config struct {
	// Workers is the number of directories summed concurrently (<= 1 sums sequentially)
	Workers int

	// RateLimit caps directory sums started per second (0 for unlimited)
	RateLimit int
}

// Resolver computes recursive directory sizes on an afero filesystem.
type Resolver struct {
	fs     afero.Fs
	config Config
	log    logger.Logger
}

// NewResolver creates a Resolver. A nil logger discards output.
func NewResolver(fs afero.Fs, config Config, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{
		fs:     fs,
		config: config,
		log:    log,
	}
}

// DirSize sums the sizes of all regular files below root. Symlinks are not
// followed or counted, and unreadable subtrees contribute zero. A cancelled
// context ends the walk with the partial sum.
func (r *Resolver) DirSize(ctx context.Context, root string) int64 {
	var total int64
	stack := []string{root}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			r.log.WithFields(logger.Fields{
				"path":  root,
				"total": total,
			}).Debug("Directory size walk cancelled")
			return total
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		names, err := r.readNames(dir)
		if err != nil {
			r.log.WithFields(logger.Fields{
				"path":  dir,
				"error": err,
			}).Debug("Skipping unreadable directory")
			continue
		}

		for _, name := range names {
			path := filepath.Join(dir, name)
			info, err := r.lstat(path)
			if err != nil {
				r.log.WithFields(logger.Fields{
					"path":  path,
					"error": err,
				}).Trace("Skipping entry without metadata")
				continue
			}

			switch {
			case info.Mode()&os.ModeSymlink != 0:
				continue
			case info.IsDir():
				stack = append(stack, path)
			case info.Mode().IsRegular():
				total += info.Size()
			}
		}
	}

	return total
}

// DirSizes sums every path and returns the totals in input order. With more
// than one worker the sums run on a worker pool.
func (r *Resolver) DirSizes(ctx context.Context, paths []string) []int64 {
	sizes := make([]int64, len(paths))
	if len(paths) == 0 {
		return sizes
	}

	if r.config.Workers <= 1 || len(paths) == 1 {
		for i, p := range paths {
			sizes[i] = r.DirSize(ctx, p)
		}
		return sizes
	}

	pool, err := worker.NewPool(worker.Config{
		Workers:   r.config.Workers,
		RateLimit: r.config.RateLimit,
	})
	if err == nil {
		err = pool.Start(ctx)
	}
	if err != nil {
		r.log.WithFields(logger.Fields{
			"error": err,
		}).Warn("Worker pool unavailable, summing sequentially")
		for i, p := range paths {
			sizes[i] = r.DirSize(ctx, p)
		}
		return sizes
	}
	defer pool.Stop()

	for i, p := range paths {
		i, p := i, p
		task := worker.Task{
			ID: i,
			Execute: func(ctx context.Context) (worker.Result, error) {
				return worker.Result{ID: i, Data: r.DirSize(ctx, p)}, nil
			},
		}
		if err := pool.Submit(task); err != nil {
			r.log.WithFields(logger.Fields{
				"path":  p,
				"error": err,
			}).Debug("Directory size task not submitted")
		}
	}

	results, err := pool.Wait()
	if err != nil {
		r.log.WithFields(logger.Fields{
			"error": err,
		}).Warn("Directory size computation incomplete")
	}

	stats := pool.GetStats()
	r.log.WithFields(logger.Fields{
		"directories": len(paths),
		"completed":   stats.CompletedTasks,
		"failed":      stats.FailedTasks,
		"uptime":      stats.Uptime,
	}).Debug("Directory sizes computed")

	for _, res := range results {
		if total, ok := res.Data.(int64); ok && res.ID >= 0 && res.ID < len(sizes) {
			sizes[res.ID] = total
		}
	}

	return sizes
}

func (r *Resolver) readNames(dir string) ([]string, error) {
	f, err := r.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdirnames(-1)
}

func (r *Resolver) lstat(path string) (os.FileInfo, error) {
	if l, ok := r.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return r.fs.Stat(path)
}
