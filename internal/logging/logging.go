// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the file-backed application log.
//
// The TUI owns stdout and stderr while it is running, so all diagnostics go
// to a log file instead (default ~/.insights/client.log). Helpers are nil-safe
// before Init so packages can log unconditionally.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	log *logrus.Logger
)

// Init configures the global logger with the given level and log file path.
// An empty path disables file output (messages are discarded).
func Init(level, path string) error {
	l := logrus.New()

	switch level {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "info":
		l.SetLevel(logrus.InfoLevel)
	case "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if path == "" {
		l.SetOutput(io.Discard)
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		l.SetOutput(f)
	}

	mu.Lock()
	log = l
	mu.Unlock()
	return nil
}

func get() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debugf(format string, args ...interface{}) {
	if l := get(); l != nil {
		l.Debugf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if l := get(); l != nil {
		l.Infof(format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if l := get(); l != nil {
		l.Warnf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if l := get(); l != nil {
		l.Errorf(format, args...)
	}
}

// WithFields returns an entry carrying structured fields, or nil when the
// logger is not initialized. Callers must nil-check.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if l := get(); l != nil {
		return l.WithFields(fields)
	}
	return nil
}
