package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/go-harden/botlimit/botlimit/limit"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher keeps the latest valid config for a path and reloads it when the
// file changes on disk. Readers never block on a reload.
type Watcher struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[Config]

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	timer    *time.Timer
	onReload func(*Config)
}

// NewWatcher loads the config at path (defaults when missing) and returns a
// watcher holding it. Call Start to follow changes.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := LoadOrDefaultConfig(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{path: filepath.Clean(path), logger: logger}
	w.current.Store(cfg)
	return w, nil
}

// OnReload registers a callback invoked after each successful reload.
func (w *Watcher) OnReload(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// Current returns the most recently loaded valid config.
func (w *Watcher) Current() *Config {
	return w.current.Load()
}

// Limits returns the current limits with defaults applied. It is suitable
// as the accessor for limit.NewService.
func (w *Watcher) Limits() limit.Limits {
	return w.Current().GetLimits()
}

// Path returns the watched config path.
func (w *Watcher) Path() string {
	return w.path
}

// Reload re-reads the config file. On failure the previous config is kept.
// A missing file resets to defaults.
func (w *Watcher) Reload() error {
	cfg, err := Load(w.path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous config", "path", w.path, "error", err)
		return err
	}

	w.current.Store(cfg)
	w.logger.Info("config reloaded", "path", w.path)

	w.mu.Lock()
	fn := w.onReload
	w.mu.Unlock()
	if fn != nil {
		fn(cfg)
	}
	return nil
}

// Start watches the directory holding the config file. Watching the directory
// rather than the file survives editors that save by rename.
// When the directory does not exist there is nothing to follow and Start returns nil.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()

	dir := filepath.Dir(w.path)
	if _, err := os.Stat(dir); err != nil {
		w.logger.Debug("config directory missing, not watching", "dir", dir)
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.stopChan = make(chan struct{})
	go w.watchLoop(watcher, w.stopChan)

	w.logger.Debug("watching config", "path", w.path)
	return nil
}

// Close stops watching. The last loaded config remains available.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
	return nil
}

func (w *Watcher) stopLocked() {
	if w.stopChan != nil {
		close(w.stopChan)
		w.stopChan = nil
	}
	if w.watcher != nil {
		_ = w.watcher.Close()
		w.watcher = nil
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) watchLoop(watcher *fsnotify.Watcher, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				w.scheduleReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// scheduleReload coalesces bursts of events from a single save.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopChan == nil {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, func() {
		_ = w.Reload()
	})
}
