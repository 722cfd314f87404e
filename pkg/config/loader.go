package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/bastiangx/unipick/internal/utils"
)

// Loader holds the current config and reloads it when the file changes.
// Readers call Config on every request; Generation tells them whether the
// config changed since they last looked.
type Loader struct {
	path       string
	config     *Config
	generation atomic.Uint64
	mu         sync.RWMutex
	watcher    *fsnotify.Watcher
	onChange   []func(*Config)
	ctx        context.Context
	cancel     context.CancelFunc
	errChan    chan error
	wg         sync.WaitGroup
}

// NewLoader creates a loader for path seeded with cfg.
func NewLoader(path string, cfg *Config) *Loader {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		path:    path,
		config:  cfg,
		ctx:     ctx,
		cancel:  cancel,
		errChan: make(chan error, 1),
	}
}

// Path returns the watched file.
func (l *Loader) Path() string {
	return l.path
}

// Config returns the current configuration. It must not be modified.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// Generation increments on every successful reload.
func (l *Loader) Generation() uint64 {
	return l.generation.Load()
}

// Reload reads the file again. An invalid file leaves the current config in place.
func (l *Loader) Reload() error {
	cfg, err := loadStrict(l.path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.config = cfg
	callbacks := append([]func(*Config){}, l.onChange...)
	l.mu.Unlock()
	l.generation.Add(1)

	log.Debugf("Reloaded config from %s", l.path)
	for _, cb := range callbacks {
		cb(cfg)
	}
	return nil
}

// loadStrict parses path without falling back to defaults, so a broken edit
// never replaces a working config.
func loadStrict(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(path, cfg); err != nil {
		return nil, fmt.Errorf("reload config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate new config: %w", err)
	}
	return cfg, nil
}

// OnChange registers a callback invoked after every successful reload.
// Callbacks run on the watcher goroutine.
func (l *Loader) OnChange(cb func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, cb)
}

// Errors returns a channel for receiving errors that occur during watching.
func (l *Loader) Errors() <-chan error {
	return l.errChan
}

// Watch starts watching the config file. Rapid successive writes are
// folded into a single reload after debounce.
func (l *Loader) Watch(debounce time.Duration) error {
	if l.path == "" {
		return fmt.Errorf("no config file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are noticed
	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	l.watcher = watcher

	l.wg.Add(1)
	go l.watchLoop(debounce)
	log.Debugf("Watching %s for changes", l.path)
	return nil
}

func (l *Loader) watchLoop(debounce time.Duration) {
	defer l.wg.Done()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-l.ctx.Done():
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(l.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				if l.ctx.Err() != nil {
					return
				}
				if err := l.Reload(); err != nil {
					log.Warnf("Keeping previous config: %v", err)
					l.sendErr(err)
				}
			})

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.sendErr(err)
		}
	}
}

func (l *Loader) sendErr(err error) {
	select {
	case l.errChan <- err:
	default:
	}
}

// Close stops the watcher and releases resources.
func (l *Loader) Close() error {
	l.cancel()
	if l.watcher == nil {
		return nil
	}
	err := l.watcher.Close()
	l.wg.Wait()
	return err
}
