package modelcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	rec := &Record{
		PlayerKey: "ABC123",
		Version:   3,
		TrainedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Samples:   17,
		Dims:      33,
		Weights:   []float64{0.12345678901234567, -1.5e-7, 3, 0},
		Distribution: map[string]float64{
			"Cycle": 0.6,
			"Siege": 0.4,
		},
	}

	require.NoError(t, store.Put(ctx, "ABC123", rec))

	got, err := store.Get(ctx, "ABC123")
	require.NoError(t, err)
	// Weights must survive the round trip bit for bit.
	assert.Equal(t, rec.Weights, got.Weights)
	assert.Equal(t, rec.Version, got.Version)
	assert.Equal(t, rec.Samples, got.Samples)
	assert.Equal(t, rec.Distribution, got.Distribution)
	assert.True(t, rec.TrainedAt.Equal(got.TrainedAt))
}

func TestFileStore_GetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_GetCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "BAD.json"), []byte("{trunca"), 0o644))

	_, err = store.Get(context.Background(), "BAD")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_PutOverwrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "KEY", &Record{Version: 2, Samples: 1}))
	require.NoError(t, store.Put(ctx, "KEY", &Record{Version: 3, Samples: 9}))

	got, err := store.Get(ctx, "KEY")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, 9, got.Samples)
}

func TestFileStore_PutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "KEY", &Record{Version: 3}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "KEY.json", entries[0].Name())
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "KEY", &Record{Version: 3}))
	require.NoError(t, store.Delete(ctx, "KEY"))

	_, err = store.Get(ctx, "KEY")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent record is not an error.
	assert.NoError(t, store.Delete(ctx, "KEY"))
}
