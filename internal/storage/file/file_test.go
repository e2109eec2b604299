package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discipline/internal/storage"
)

func TestSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, storage.LogsKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, storage.LogsKey, []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, storage.LogsKey, []byte(`[1,2]`)))

	got, err := s.Get(ctx, storage.LogsKey)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	require.NoError(t, s.Delete(ctx, storage.LogsKey))
	require.NoError(t, s.Delete(ctx, storage.LogsKey), "deleting a missing key is fine")
	_, err = os.Stat(s.Path(storage.LogsKey))
	assert.True(t, os.IsNotExist(err))
}

func TestSlotLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Put(ctx, "k", []byte("v")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestSlotPutSyncsDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	var synced []string
	s.syncDir = func(d string) error {
		synced = append(synced, d)
		return syncDir(d)
	}
	require.NoError(t, s.Put(ctx, storage.LogsKey, []byte(`[]`)))
	assert.Equal(t, []string{dir}, synced)

	s.syncDir = func(string) error { return errors.New("fsync failed") }
	err = s.Put(ctx, storage.LogsKey, []byte(`[1]`))
	assert.ErrorContains(t, err, "sync data directory")
}

func TestSlotRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", "with space"} {
		assert.Error(t, s.Put(ctx, key, []byte("x")), key)
		_, err := s.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestSlotHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Put(ctx, "k", []byte("v")), context.Canceled)
}

func TestNewRequiresDirectory(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
