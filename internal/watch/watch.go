// Package watch reruns an export whenever its input changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits after the last change
// before running again.
const DefaultDebounce = 300 * time.Millisecond

// Options configures Run.
type Options struct {
	// Debounce collapses a burst of events into one run. Zero means
	// DefaultDebounce.
	Debounce time.Duration
	// Logger receives watcher diagnostics. Nil discards them.
	Logger *logrus.Logger
}

// Run calls fn once, then again after every burst of changes to path, until
// ctx is canceled. A dump file is watched through its directory so editors
// that replace the file are still seen. A source directory is watched
// recursively, and directories created later are added as they appear.
//
// Errors from fn are logged and do not stop the watcher. Calls to fn never
// overlap.
func Run(ctx context.Context, path string, opts Options, fn func() error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetOutput(io.Discard)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	w := &watchLoop{path: filepath.Clean(path), dir: info.IsDir(), opts: opts, watcher: watcher}
	if w.dir {
		err = w.addTree(w.path)
	} else {
		err = watcher.Add(filepath.Dir(w.path))
	}
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	w.run(fn)
	return w.serve(ctx, fn)
}

type watchLoop struct {
	path    string
	dir     bool
	opts    Options
	watcher *fsnotify.Watcher
}

func (w *watchLoop) serve(ctx context.Context, fn func() error) error {
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.track(event)
			if !w.relevant(event) {
				continue
			}
			w.opts.Logger.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("change detected")
			timer.Reset(w.opts.Debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.WithError(err).Warn("watcher error")
		case <-timer.C:
			w.run(fn)
		}
	}
}

func (w *watchLoop) run(fn func() error) {
	if err := fn(); err != nil {
		w.opts.Logger.WithError(err).Error("export failed")
	}
}

// track adds directories created under a watched source tree.
func (w *watchLoop) track(event fsnotify.Event) {
	if !w.dir || !event.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() || skipDir(filepath.Base(event.Name)) {
		return
	}
	if err := w.addTree(event.Name); err != nil {
		w.opts.Logger.WithError(err).WithField("dir", event.Name).Warn("cannot watch new directory")
	}
}

// relevant reports whether event should trigger a run.
func (w *watchLoop) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if !w.dir {
		return filepath.Clean(event.Name) == w.path
	}
	return Relevant(event.Name)
}

// Relevant reports whether a changed file inside a watched source tree
// affects the export: Go sources other than tests.
func Relevant(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".go") && !strings.HasSuffix(base, "_test.go")
}

// addTree watches root and every directory below it that the source
// scanner would visit.
func (w *watchLoop) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
