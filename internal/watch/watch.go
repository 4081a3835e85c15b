// Package watch reruns work when model files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period that closes a burst of events.
const DefaultDebounce = 200 * time.Millisecond

// Config selects the watched files.
type Config struct {
	Paths    []string
	Debounce time.Duration
	Logger   *zap.Logger
	// Ready, when set, is called once the watches are installed.
	Ready func()
}

// Run watches the directories holding cfg.Paths and calls fn with the
// changed files, sorted, once events have settled. Editors that save by
// rename are covered because the directory is watched rather than the
// file. Run returns nil when ctx is done.
func Run(ctx context.Context, cfg Config, fn func(changed []string)) error {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	targets := make(map[string]struct{}, len(cfg.Paths))
	dirs := make(map[string]struct{}, len(cfg.Paths))
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	if cfg.Ready != nil {
		cfg.Ready()
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[name]; !ok {
				continue
			}
			log.Debug("model changed", zap.String("path", name), zap.String("op", ev.Op.String()))
			pending[name] = struct{}{}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)
			fn(changed)
		}
	}
}
