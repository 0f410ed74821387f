package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watcher reruns Load when any of the files it applied changes on disk and
// hands the result to onChange. Errors from reloading go to onError.
//
// Parent directories are watched rather than the files themselves so editors
// that replace a file on save keep triggering events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	explicit string
	files    map[string]bool
	onChange func(*Config)
	onError  func(error)

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewWatcher watches cfg.Paths. explicit is the argument cfg was loaded
// with, so a reload layers the same sources again.
func NewWatcher(explicit string, cfg *Config, onChange func(*Config), onError func(error)) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("no config files to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:  fw,
		explicit: explicit,
		files:    make(map[string]bool),
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := fw.Add(dir); err != nil {
				fw.Close()
				return nil, err
			}
			dirs[dir] = true
		}
	}
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.timer = time.AfterFunc(debounceDelay, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.explicit)
	if err != nil {
		w.report(err)
		return
	}
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.watcher.Close()
}
