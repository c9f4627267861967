// Package watch runs a build each time a watched file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/mmlt/cadence-setup/pkg/util/backoff"
)

// DefaultDebounce is the quiet time after the last event before a build starts.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls Build after changes to Paths.
type Watcher struct {
	// Paths are the files and directories to watch.
	// Directories are watched including their subdirectories.
	Paths []string
	// Build is called after changes.
	// An error is logged, the Watcher keeps going.
	Build func(ctx context.Context) error
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Rearm is the number of times the watch on a removed path is retried.
	// Default 10.
	Rearm int

	Log logr.Logger

	fw *fsnotify.Watcher
	// roots are the watched Paths as cleaned names.
	roots map[string]bool
	// rearming are the roots that are being re-armed.
	rearming map[string]bool
}

// rearmed is the result of re-arming a watch.
type rearmed struct {
	path string
	err  error
}

// Run watches until ctx is done.
// It returns an error when the watches can't be setup.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Build == nil {
		return errors.New("watch: no build func")
	}
	if w.Debounce == 0 {
		w.Debounce = DefaultDebounce
	}
	if w.Rearm == 0 {
		w.Rearm = 10
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()
	w.fw = fw

	// re-arm goroutines stop before fw is closed.
	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	results := make(chan rearmed)

	w.rearming = map[string]bool{}
	w.roots = make(map[string]bool, len(w.Paths))
	for _, p := range w.Paths {
		p = filepath.Clean(p)
		w.roots[p] = true
		err := w.add(p)
		if err != nil {
			return err
		}
	}
	w.Log.Info("Watch", "paths", w.Paths)

	// debounce
	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("Watch stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.Log.V(2).Info("Event", "name", ev.Name, "op", ev.Op.String())

			switch {
			case ev.Has(fsnotify.Create):
				if isDir(ev.Name) {
					err := w.add(ev.Name)
					if err != nil {
						w.Log.Error(err, "Watch")
					}
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				p := filepath.Clean(ev.Name)
				if w.roots[p] && !w.rearming[p] {
					w.rearming[p] = true
					wg.Add(1)
					go func() {
						defer wg.Done()
						r := rearmed{path: p, err: w.rearm(ctx, p)}
						select {
						case results <- r:
						case <-ctx.Done():
						}
					}()
				}
			case ev.Has(fsnotify.Chmod):
				continue
			}

			timer.Reset(w.Debounce)

		case r := <-results:
			delete(w.rearming, r.path)
			if r.err != nil {
				w.Log.Error(r.err, "Rearm", "path", r.path)
				continue
			}
			// changes while the path was gone are picked up by a build.
			timer.Reset(w.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Error(err, "Watch")

		case <-timer.C:
			w.Log.Info("Build")
			err := w.Build(ctx)
			if err != nil {
				w.Log.Error(err, "Build")
			}
		}
	}
}

// Add watches path and when path is a directory all directories below it.
func (w *Watcher) add(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if !fi.IsDir() {
		return w.fw.Add(path)
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		w.Log.V(3).Info("Add", "dir", p)
		return w.fw.Add(p)
	})
}

// Rearm watches path again after it has been removed or renamed.
// Editors often save by replacing a file so path reappears shortly after.
// It runs outside the event loop so other events keep being handled.
func (w *Watcher) rearm(ctx context.Context, path string) error {
	_ = w.fw.Remove(path)

	exp := backoff.NewExponential(2 * time.Second)
	for {
		err := w.add(path)
		if err == nil {
			w.Log.V(1).Info("Rearm", "path", path, "retries", exp.Retries())
			return nil
		}
		if exp.Retries() >= w.Rearm {
			return err
		}
		err = exp.Wait(ctx)
		if err != nil {
			return err
		}
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
