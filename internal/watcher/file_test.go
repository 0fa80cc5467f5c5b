// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_New(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.ndjson")

	w, err := NewFileWatcher(path, 10*time.Millisecond, func() {}, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, path, w.Path())
}

func TestFileWatcher_NilCallback(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "f"), 0, nil, nil)
	assert.Error(t, err)
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "f"), 0, func() {}, nil)
	assert.Error(t, err)
}

func TestFileWatcher_Write_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "errors.ndjson")
	other := filepath.Join(dir, "other.txt")

	var calls atomic.Int32
	w, err := NewFileWatcher(path, 20*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Close()

	// Writes to sibling files are ignored.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// Creating the watched file counts.
	require.NoError(t, os.WriteFile(path, []byte("line\n"), 0644))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcher_BurstCollapses_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	path := filepath.Join(t.TempDir(), "errors.ndjson")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var calls atomic.Int32
	w, err := NewFileWatcher(path, 150*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, err)
	defer w.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.WriteString("line\n")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFileWatcher_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.ndjson")

	var calls atomic.Int32
	w, err := NewFileWatcher(path, 10*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	require.NoError(t, os.WriteFile(path, []byte("late\n"), 0644))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
