package photos

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/gni-robotics/fieldrover/internal/log"
)

// Watcher notifies on new JPEGs appearing in the photo directory,
// whether they came through Capture or were dropped in by hand.
type Watcher struct {
	fsw     *fsnotify.Watcher
	onPhoto func(name string)
}

// Watch starts watching dir and calls onPhoto with the file name of
// each new JPEG. The callback runs on the watcher goroutine and must
// not block.
func Watch(dir string, onPhoto func(name string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{fsw: fsw, onPhoto: onPhoto}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".jpg") {
				continue
			}
			log.Debug("new photo on disk", "name", name)
			w.onPhoto(name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("photo watcher error", "error", err)
		}
	}
}

// Close stops the watcher. The event loop exits once the underlying
// channels close.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
