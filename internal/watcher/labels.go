// Package watcher provides file watching with debouncing using fsnotify.
package watcher

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tapemark/tapemark/internal/label"
)

const debounce = 200 * time.Millisecond

// LabelsWatcher reloads the label taxonomy when its file changes on disk,
// so an annotator can extend labels.yaml mid-session. Editors that replace
// files via rename are handled by watching the parent directory.
type LabelsWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	reload  func(*label.Taxonomy)
	done    chan struct{}
	log     *slog.Logger
}

// WatchLabels starts watching path and invokes reload with each freshly
// parsed taxonomy. The callback runs on the watcher goroutine; callers hand
// the result to their event loop rather than mutating shared state in place.
func WatchLabels(path string, reload func(*label.Taxonomy)) (*LabelsWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}

	w := &LabelsWatcher{
		path:    path,
		watcher: fs,
		reload:  reload,
		done:    make(chan struct{}),
		log:     slog.Default(),
	}
	go w.loop()
	return w, nil
}

func (w *LabelsWatcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Debug("labels watcher error", "err", err)
		case <-timerC:
			tax, err := label.LoadFile(w.path)
			if err != nil {
				w.log.Debug("labels reload failed", "path", w.path, "err", err)
				continue
			}
			w.reload(tax)
		}
	}
}

// Close stops the watcher.
func (w *LabelsWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
