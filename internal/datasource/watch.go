// Package datasource provides file watching for the train database.
package datasource

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval absorbs the burst of writes SQLite makes per commit.
const debounceInterval = 100 * time.Millisecond

// Watcher monitors the train database directory for feed deliveries.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dbPath   string
	debounce time.Duration
	onChange chan struct{}
	done     chan struct{}
}

// NewWatcher creates a watcher for the given database path.
// It watches the parent directory so WAL checkpoint writes are seen too.
func NewWatcher(dbPath string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(dbPath)); err != nil {
		w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		dbPath:   dbPath,
		debounce: debounceInterval,
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	go watcher.loop()
	return watcher, nil
}

// Changes returns a channel that receives a signal when the feed changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.onChange
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

// isFeedFile reports whether an event path belongs to the database: the
// main file, its WAL, or its shared-memory index.
func (w *Watcher) isFeedFile(name string) bool {
	base := filepath.Base(name)
	db := filepath.Base(w.dbPath)
	return base == db || base == db+"-wal" || base == db+"-shm"
}

func (w *Watcher) loop() {
	var timer *time.Timer
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isFeedFile(event.Name) {
				continue
			}
			// Write covers SQLite commits, Create and Rename cover a
			// delivery that replaces the file wholesale.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Debounce: reset timer on each write.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case w.onChange <- struct{}{}:
				default: // already signaled, skip
				}
			})
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
