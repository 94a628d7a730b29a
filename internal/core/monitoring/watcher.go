package monitoring

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// BundleWatcher watches a recording bundle's source files for changes so the
// viewer can hot-reload. It watches the parent directories rather than the
// files themselves: tools that rewrite a recording atomically (write to temp,
// rename over) would otherwise silently detach the watch.
type BundleWatcher struct {
	watcher *fsnotify.Watcher
	watched map[string]bool // absolute paths of the bundle files
	events  chan model.FileEvent
}

// NewBundleWatcher starts watching the given files. Events for unrelated
// files in the same directories are filtered out.
func NewBundleWatcher(files []string) (*BundleWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	bw := &BundleWatcher{
		watcher: watcher,
		watched: make(map[string]bool, len(files)),
		events:  make(chan model.FileEvent, 100),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		bw.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go bw.processEvents()

	return bw, nil
}

func (bw *BundleWatcher) processEvents() {
	for {
		select {
		case event, ok := <-bw.watcher.Events:
			if !ok {
				return
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil || !bw.watched[abs] {
				continue
			}
			bw.events <- model.FileEvent{
				Path:      abs,
				Operation: event.Op.String(),
			}

		case err, ok := <-bw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events returns the filtered change stream.
func (bw *BundleWatcher) Events() <-chan model.FileEvent {
	return bw.events
}

// Close stops watching. The events channel drains and stays open; the run
// loop selects on it alongside its own done channel.
func (bw *BundleWatcher) Close() error {
	return bw.watcher.Close()
}
