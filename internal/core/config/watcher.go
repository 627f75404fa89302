package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 50 * time.Millisecond

// Watcher reloads the config file whenever it changes on disk and hands
// every successfully validated result to a callback. Invalid edits are
// logged and skipped; the previous config stays in effect.
type Watcher struct {
	path     string
	dataDir  string
	log      zerolog.Logger
	onChange func(*Config)
	watcher  *fsnotify.Watcher

	mu       sync.Mutex
	debounce *time.Timer
	closed   bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher watches the directory containing path, so editors that replace
// the file on save are handled. The directory is created if it doesn't exist.
func NewWatcher(path, dataDir string, logger zerolog.Logger, onChange func(*Config)) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		dataDir:  dataDir,
		log:      logger,
		onChange: onChange,
		watcher:  fw,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Close stops watching. Pending reloads are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("path", w.path).Msg("config watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	// Load falls back to defaults for a missing file. A file moved or deleted
	// while watched is not an edit, so the running config stays.
	if _, err := os.Stat(w.path); errors.Is(err, os.ErrNotExist) {
		w.log.Info().Str("path", w.path).Msg("config file removed, keeping previous config")
		return
	}

	cfg, err := Load(w.path, w.dataDir)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed, keeping previous config")
		return
	}

	w.log.Info().Str("path", w.path).Msg("config reloaded")
	w.onChange(cfg)
}
