package loader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher calls a function whenever one of a set of files is written or
// re-created. Directories are watched rather than files, which keeps working
// across editors that save by renaming a temp file over the original.
type Watcher struct {
	files    map[string]struct{}
	onChange func(path string)
	logger   zerolog.Logger

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	stop    sync.Once
	done    chan struct{}
}

// NewWatcher starts watching paths. onChange runs on the watcher's goroutine,
// one call at a time, with the absolute path of the changed file.
func NewWatcher(paths []string, onChange func(path string), logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		onChange: onChange,
		logger:   logger,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	dirs := map[string]struct{}{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("absolute path: %w", err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch directory: %w", err)
		}
	}
	go w.loop()
	w.logger.Info().Strs("paths", paths).Msg("watching files for changes")
	return w, nil
}

// Close stops watching and waits for the loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[abs]; !ok {
				continue
			}
			// React to write or create (atomic save = create)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", abs).
					Msg("file changed")
				w.onChange(abs)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("file watcher error")
		case <-w.stopCh:
			return
		}
	}
}
