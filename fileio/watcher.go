package fileio

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ExportWatcher monitors a watch-history export file and emits a debounced
// signal whenever it is rewritten, so watch mode can re-run the pipeline.
type ExportWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	changes  chan time.Time
	errors   chan error
	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool
	debounce time.Duration
	timer    *time.Timer
}

// NewExportWatcher creates a watcher for the given export file.
func NewExportWatcher(path string) (*ExportWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &ExportWatcher{
		watcher:  fsWatcher,
		path:     path,
		changes:  make(chan time.Time, 1),
		errors:   make(chan error, 1),
		stopCh:   make(chan struct{}),
		debounce: 500 * time.Millisecond,
	}, nil
}

// Start begins watching the export file's directory. Watching the directory
// rather than the file survives atomic replace-on-save.
func (w *ExportWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher is already running")
	}

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.running = true
	go w.loop()
	return nil
}

// Changes returns the channel signalling debounced export modifications.
func (w *ExportWatcher) Changes() <-chan time.Time {
	return w.changes
}

// Errors returns the channel carrying watcher errors.
func (w *ExportWatcher) Errors() <-chan error {
	return w.errors
}

// Stop shuts the watcher down.
func (w *ExportWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)
	return w.watcher.Close()
}

func (w *ExportWatcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleNotify()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		case <-w.stopCh:
			return
		}
	}
}

// scheduleNotify coalesces rapid event bursts into one change signal.
func (w *ExportWatcher) scheduleNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.changes <- time.Now():
		default:
		}
	})
}
