package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// File is one rendered source file. Path is relative to the target
// directory.
type File struct {
	Path    string
	Content []byte
}

// Backend turns artifact trees into source files.
type Backend interface {
	// Name returns the backend name, recorded in the manifest.
	Name() string
	// Render renders one top-level class with its nested types.
	Render(c *Class) (*File, error)
}

// Writer renders artifacts through a backend and writes them to the
// target directory in parallel.
type Writer struct {
	cfg     *Config
	backend Backend
	workers int
	keep    bool

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesWritten int
	FilesRemoved int
	TotalBytes   int64
}

// NewWriter creates a writer for cfg rendering with b.
func NewWriter(cfg *Config, b Backend) *Writer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Writer{cfg: cfg, backend: b, workers: workers, metrics: &WriterMetrics{}}
}

// KeepStale disables the removal of files recorded by a previous run.
func (w *Writer) KeepStale() *Writer {
	w.keep = true
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// Write renders and writes all classes. A class that fails to render or
// write does not stop the others; the failures are returned joined.
// Classes whose output paths are equal, ignoring case, are not written.
// Files recorded by a previous run and not produced by this one are
// removed once every class was written successfully, unless KeepStale
// was called.
func (w *Writer) Write(ctx context.Context, classes []*Class) error {
	if w.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if err := os.MkdirAll(w.cfg.Target, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	prev, err := ReadManifest(w.cfg.Target)
	if err != nil {
		return err
	}
	var (
		log  = w.cfg.Log()
		next = &Manifest{Generator: w.backend.Name()}
		errs []error
	)
	files, err := w.render(ctx, classes, &errs)
	if err != nil {
		return err
	}
	w.dropCollisions(classes, files, &errs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, c := range classes {
		f := files[i]
		if f == nil {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := w.writeFile(c, f)
			w.mu.Lock()
			defer w.mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				log.Error("write artifact", zap.Stringer("class", c.Name), zap.Error(err))
				return nil
			}
			next.Files = append(next.Files, filepath.ToSlash(f.Path))
			w.metrics.FilesWritten++
			w.metrics.TotalBytes += int64(len(f.Content))
			log.Debug("artifact written", zap.Stringer("class", c.Name), zap.String("path", f.Path))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if len(errs) > 0 || w.keep {
		// Keep the previous files around, the failed ones are still listed.
		next.Files = append(next.Files, prev.Files...)
	} else {
		for _, stale := range prev.Stale(next) {
			if err := os.Remove(filepath.Join(w.cfg.Target, filepath.FromSlash(stale))); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("remove stale file %s: %w", stale, err))
				continue
			}
			w.metrics.FilesRemoved++
			log.Info("stale file removed", zap.String("path", stale))
		}
	}
	if err := next.Write(w.cfg.Target); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// render renders every class in parallel. The returned slice is indexed
// like classes and holds nil for the classes that failed.
func (w *Writer) render(ctx context.Context, classes []*Class, errs *[]error) ([]*File, error) {
	files := make([]*File, len(classes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, c := range classes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := w.backend.Render(c)
			if err != nil {
				err = NewGenerationError("render", c.Name.String(), "", err)
				w.mu.Lock()
				*errs = append(*errs, err)
				w.mu.Unlock()
				w.cfg.Log().Error("render artifact", zap.Stringer("class", c.Name), zap.Error(err))
				return nil
			}
			files[i] = f
			return nil
		})
	}
	return files, eg.Wait()
}

// dropCollisions fails every class whose output path equals, ignoring
// case, the path of another class. Their files are set to nil.
func (w *Writer) dropCollisions(classes []*Class, files []*File, errs *[]error) {
	byPath := make(map[string][]int, len(files))
	for i, f := range files {
		if f == nil {
			continue
		}
		key := strings.ToLower(filepath.ToSlash(filepath.Clean(f.Path)))
		byPath[key] = append(byPath[key], i)
	}
	for i, f := range files {
		if f == nil {
			continue
		}
		group := byPath[strings.ToLower(filepath.ToSlash(filepath.Clean(f.Path)))]
		if len(group) < 2 {
			continue
		}
		others := make([]string, 0, len(group)-1)
		for _, j := range group {
			if j != i {
				others = append(others, classes[j].Name.String())
			}
		}
		err := NewGenerationError("write", classes[i].Name.String(),
			fmt.Sprintf("output path %s collides with %s", f.Path, strings.Join(others, ", ")), nil)
		*errs = append(*errs, err)
		w.cfg.Log().Error("write artifact", zap.Stringer("class", classes[i].Name), zap.Error(err))
	}
	for _, group := range byPath {
		if len(group) < 2 {
			continue
		}
		for _, i := range group {
			files[i] = nil
		}
	}
}

// writeFile writes the rendered file of c below the target directory.
func (w *Writer) writeFile(c *Class, f *File) error {
	full := filepath.Join(w.cfg.Target, f.Path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return NewGenerationError("write", c.Name.String(), "create directory", err)
	}
	if err := os.WriteFile(full, f.Content, 0o644); err != nil {
		return NewGenerationError("write", c.Name.String(), "write file", err)
	}
	return nil
}
