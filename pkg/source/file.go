// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/wingedpig/sieve/internal/watcher"
)

// FileConfig configures a FileSource.
type FileConfig struct {
	Path      string        // NDJSON file, one ErrorEvent object per line
	FromStart bool          // dispatch lines already in the file when opened
	Settle    time.Duration // quiet period before reading after a write
	Logger    *slog.Logger  // receives malformed line warnings; defaults to slog.Default()
}

// FileSource tails a newline-delimited JSON file of error events and
// dispatches each complete line onto a target. Lines are read only after
// they end in a newline. A file that shrinks is treated as truncated and read
// again from the start.
type FileSource struct {
	mu      sync.Mutex
	cfg     FileConfig
	target  Target
	logger  *slog.Logger
	offset  int64
	partial []byte
	watcher *watcher.FileWatcher
	closed  bool
}

// OpenFile starts tailing cfg.Path onto target.
func OpenFile(cfg FileConfig, target Target) (*FileSource, error) {
	if cfg.Path == "" {
		return nil, errors.New("file source: empty path")
	}
	if target == nil {
		return nil, errors.New("file source: nil target")
	}

	s := &FileSource{
		cfg:    cfg,
		target: target,
		logger: cfg.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if !cfg.FromStart {
		if info, err := os.Stat(cfg.Path); err == nil {
			s.offset = info.Size()
		}
	}

	w, err := watcher.NewFileWatcher(cfg.Path, cfg.Settle, s.poll, func(err error) {
		s.logger.Warn("sieve: file source watch error", "path", cfg.Path, "error", err)
	})
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	s.watcher = w

	if cfg.FromStart {
		s.poll()
	}

	return s, nil
}

// Offset returns the number of bytes consumed so far.
func (s *FileSource) Offset() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// Close stops tailing.
func (s *FileSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.watcher.Close()
}

// poll reads everything appended since the last call and dispatches it.
func (s *FileSource) poll() {
	evs := s.readNew()
	for _, ev := range evs {
		s.target.Dispatch(ev)
	}
}

func (s *FileSource) readNew() []*ErrorEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	f, err := os.Open(s.cfg.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("sieve: file source open failed", "path", s.cfg.Path, "error", err)
		}
		// Removed or renamed away; a replacement starts from zero.
		s.offset = 0
		s.partial = nil
		return nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil
	}
	if info.Size() < s.offset {
		s.offset = 0
		s.partial = nil
	}

	if _, err := f.Seek(s.offset, io.SeekStart); err != nil {
		return nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		s.logger.Warn("sieve: file source read failed", "path", s.cfg.Path, "error", err)
		return nil
	}
	s.offset += int64(len(data))

	buf := append(s.partial, data...)
	last := bytes.LastIndexByte(buf, '\n')
	if last < 0 {
		s.partial = buf
		return nil
	}
	s.partial = append([]byte(nil), buf[last+1:]...)

	var out []*ErrorEvent
	for _, line := range bytes.Split(buf[:last], []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		ev := &ErrorEvent{}
		if err := json.Unmarshal(line, ev); err != nil {
			s.logger.Warn("sieve: skipping malformed event line", "path", s.cfg.Path, "error", err)
			continue
		}
		out = append(out, ev)
	}
	return out
}
