// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package watcher notifies callers when a file changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultSettle = 20 * time.Millisecond

// FileWatcher calls a function after a file is written, created, renamed or
// removed. Bursts of events within the settle window collapse into one call.
//
// The parent directory is watched rather than the file itself so that the
// file may be created after the watcher starts or replaced by rename.
type FileWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	settle   time.Duration
	onChange func()
	onError  func(error)
	timer    *time.Timer
	closed   bool
	closeCh  chan struct{}
	wg       sync.WaitGroup
}

// NewFileWatcher starts watching path. onError may be nil.
func NewFileWatcher(path string, settle time.Duration, onChange func(), onError func(error)) (*FileWatcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("nil change callback")
	}
	if settle <= 0 {
		settle = defaultSettle
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &FileWatcher{
		watcher:  fsWatcher,
		path:     absPath,
		settle:   settle,
		onChange: onChange,
		onError:  onError,
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processEvents()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Close stops the watcher and cancels a pending callback.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *FileWatcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
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
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Chmod alone never changes content.
	if event.Op == fsnotify.Chmod {
		return
	}
	w.schedule()
}

// schedule (re)arms the settle timer.
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.timer = nil
		w.mu.Unlock()
		w.onChange()
	})
}
