// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the insights client.
package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/insightsbot/insights-tui/internal/logging"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// Watcher reloads the global configuration when the config file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	debounce time.Duration
	mu       sync.Mutex
	lastSeen time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWatcher creates a config watcher. onChange is invoked with the freshly
// reloaded global config after each successful reload; it may be nil.
func NewWatcher(onChange func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		watcher:  fsw,
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching the config directory for changes.
// Watching the directory rather than the file survives editors that
// replace the file on save.
func (w *Watcher) Watch() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.processEvents()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isConfigFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			now := time.Now()
			debounced := now.Sub(w.lastSeen) < w.debounce
			w.lastSeen = now
			w.mu.Unlock()
			if debounced {
				continue
			}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warnf("config watcher error: %v", err)
		}
	}
}

func (w *Watcher) isConfigFile(path string) bool {
	base := filepath.Base(path)
	return base == "config.toml" || base == "config.json"
}

func (w *Watcher) reload() {
	if err := ReloadGlobal(); err != nil {
		logging.Warnf("config reload failed: %v", err)
		return
	}
	logging.Infof("configuration reloaded")
	if w.onChange != nil {
		w.onChange(Global())
	}
}
