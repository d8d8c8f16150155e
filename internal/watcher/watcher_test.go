// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func start(t *testing.T, path string, debounce time.Duration) (<-chan string, context.CancelFunc, <-chan error) {
	t.Helper()
	changed := make(chan string, 16)
	w, err := New(Config{Path: path, Debounce: debounce}, func(p string) { changed <- p }, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Serve(ctx) }()
	t.Cleanup(cancel)

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	return changed, cancel, done
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, func(string) {}, zerolog.Nop())
	assert.Error(t, err)
	_, err = New(Config{Path: "titles.csv"}, nil, zerolog.Nop())
	assert.Error(t, err)

	w, err := New(Config{Path: "titles.csv"}, func(string) {}, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(w.Path()))
	assert.Equal(t, DefaultDebounce, w.debounce)
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(file, []byte("title\n"), 0o600))

	changed, _, _ := start(t, file, 20*time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("title\nDark\n"), 0o600))

	path, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok, "expected callback for file write")
	assert.Equal(t, file, path)
}

func TestWatcher_DetectsReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(file, []byte("title\n"), 0o600))

	changed, _, _ := start(t, file, 20*time.Millisecond)

	tmp := filepath.Join(dir, "titles.csv.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("title\nOzark\n"), 0o600))
	require.NoError(t, os.Rename(tmp, file))

	_, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback after atomic replace")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(file, []byte("title\n"), 0o600))

	changed, _, _ := start(t, file, 20*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "unrelated file must not trigger a reload")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(file, []byte("title\n"), 0o600))

	changed, _, _ := start(t, file, 200*time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("title\nrow\n"), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	_, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok)
	_, again := waitForCallback(changed, 400*time.Millisecond)
	assert.False(t, again, "burst should collapse into one callback")
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "titles.csv")

	_, cancel, done := start(t, file, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New(Config{Path: filepath.Join(t.TempDir(), "nope", "titles.csv")}, func(string) {}, zerolog.Nop())
	require.NoError(t, err)
	assert.Error(t, w.Serve(context.Background()))
}
