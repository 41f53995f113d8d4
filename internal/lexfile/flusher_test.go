package lexfile

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexibot/internal/dict"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlusher_WriteIsObservable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")
	f := NewFlusher(path, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	res := f.Enqueue([]dict.Entry{{Name: "apple", Definition: "a red fruit", Author: "alice"}})
	require.NoError(t, res.Wait(context.Background()))

	result, err := Load(path)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "apple", result.Entries[0].Name)

	f.Close()
	assert.NoError(t, <-done)
}

func TestFlusher_FailureIsObservable(t *testing.T) {
	// Directory that does not exist: Save must fail and the future must
	// carry the error.
	path := filepath.Join(t.TempDir(), "missing", "dictionary.json")
	f := NewFlusher(path, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Run(ctx)
	defer f.Close()

	res := f.Enqueue([]dict.Entry{{Name: "apple", Definition: "x", Author: "a"}})
	err := res.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create temp file")
}

func TestFlusher_CoalescesPendingWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")
	f := NewFlusher(path, quietLogger())

	// Enqueue several snapshots before the loop starts: they coalesce
	// into one write of the newest snapshot, and every future resolves.
	first := f.Enqueue([]dict.Entry{{Name: "one", Definition: "x", Author: "a"}})
	second := f.Enqueue([]dict.Entry{{Name: "two", Definition: "x", Author: "a"}})
	last := f.Enqueue([]dict.Entry{
		{Name: "one", Definition: "x", Author: "a"},
		{Name: "two", Definition: "x", Author: "a"},
		{Name: "three", Definition: "x", Author: "a"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Run(ctx)

	for _, res := range []*FlushResult{first, second, last} {
		require.NoError(t, res.Wait(context.Background()))
	}

	result, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, result.Entries, 3, "only the newest snapshot should be on disk")

	f.Close()
}

func TestFlusher_EnqueueAfterClose(t *testing.T) {
	f := NewFlusher(filepath.Join(t.TempDir(), "dictionary.json"), quietLogger())
	f.Close()

	res := f.Enqueue([]dict.Entry{{Name: "apple", Definition: "x", Author: "a"}})
	assert.ErrorIs(t, res.Wait(context.Background()), ErrFlusherClosed)
}

func TestFlusher_DrainsPendingOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")
	f := NewFlusher(path, quietLogger())

	res := f.Enqueue([]dict.Entry{{Name: "apple", Definition: "x", Author: "a"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := f.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The accepted write was attempted before Run returned.
	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.NoError(t, res.Wait(waitCtx))

	result, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, result.Entries, 1)
}
