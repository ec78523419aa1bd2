package configbean

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/beanwire/pkg/log"
)

// DefaultDebounce is how long the watcher waits after the last change
// before rebinding.
const DefaultDebounce = 100 * time.Millisecond

// Watcher rebinds a bean whenever its configuration file changes. Each reload
// binds into a fresh value from newTarget, so a bean already handed out is
// never modified.
type Watcher[T any] struct {
	binder    *Binder
	path      string
	newTarget func() *T
	onReload  func(*T, error)
	logger    log.Logger

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewWatcher creates a watcher for the TOML file at path. binder should
// include a source reading that file. onReload receives every rebound bean
// together with the binding error, if any.
func NewWatcher[T any](binder *Binder, path string, newTarget func() *T, onReload func(*T, error)) *Watcher[T] {
	return &Watcher[T]{
		binder:    binder,
		path:      path,
		newTarget: newTarget,
		onReload:  onReload,
		logger:    binder.logger,
		Debounce:  DefaultDebounce,
	}
}

// Run watches the file's directory until ctx is cancelled. Editors often
// replace files instead of writing them, so creates count as changes too.
func (w *Watcher[T]) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: create: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("config watcher: watch %s: %w", dir, err)
	}
	w.logger.Info("watching bean config", log.String("bean", w.binder.Name()), log.String("path", w.path))

	defer w.stop()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", log.Err(err))
		}
	}
}

func (w *Watcher[T]) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	w.timer = time.AfterFunc(delay, w.reload)
}

func (w *Watcher[T]) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
}

// reload holds mu for the whole rebind so reloads never overlap and none
// starts after Run has returned.
func (w *Watcher[T]) reload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	target := w.newTarget()
	err := w.binder.Bind(target)
	if err != nil {
		w.logger.Warn("bean reload failed", log.String("bean", w.binder.Name()), log.Err(err))
	} else {
		w.logger.Info("bean reloaded", log.String("bean", w.binder.Name()))
	}
	w.onReload(target, err)
}
