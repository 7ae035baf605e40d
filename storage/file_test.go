package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-storefront-client/storage"
	"github.com/stretchr/testify/require"
)

func TestFileKVRoundTrip(t *testing.T) {
	kv, err := storage.NewFileKV(t.TempDir(), "store.json")
	require.NoError(t, err)

	require.NoError(t, kv.Set("accessToken", "abc123"))

	value, err := kv.Get("accessToken")
	require.NoError(t, err)
	require.Equal(t, "abc123", value)
}

func TestFileKVGetMissingKey(t *testing.T) {
	kv, err := storage.NewFileKV(t.TempDir(), "store.json")
	require.NoError(t, err)

	_, err = kv.Get("missing")
	require.ErrorIs(t, err, storage.KeyNotFoundErr)
}

func TestFileKVOverwrite(t *testing.T) {
	kv, err := storage.NewFileKV(t.TempDir(), "store.json")
	require.NoError(t, err)

	require.NoError(t, kv.Set("theme", "dark"))
	require.NoError(t, kv.Set("theme", "light"))

	value, err := kv.Get("theme")
	require.NoError(t, err)
	require.Equal(t, "light", value)
}

func TestFileKVDelete(t *testing.T) {
	kv, err := storage.NewFileKV(t.TempDir(), "store.json")
	require.NoError(t, err)

	require.NoError(t, kv.Set("accessToken", "abc123"))
	require.NoError(t, kv.Delete("accessToken"))

	_, err = kv.Get("accessToken")
	require.ErrorIs(t, err, storage.KeyNotFoundErr)

	// Deleting an absent key is a no-op
	require.NoError(t, kv.Delete("accessToken"))
}

func TestFileKVVisibleToSecondInstance(t *testing.T) {
	folder := t.TempDir()

	first, err := storage.NewFileKV(folder, "store.json")
	require.NoError(t, err)
	require.NoError(t, first.Set("accessToken", "abc123"))

	// A second instance over the same file sees the write, the way another
	// process sharing the data folder would.
	second, err := storage.NewFileKV(folder, "store.json")
	require.NoError(t, err)

	value, err := second.Get("accessToken")
	require.NoError(t, err)
	require.Equal(t, "abc123", value)
}

func TestFileKVLeavesNoTempFile(t *testing.T) {
	folder := t.TempDir()

	kv, err := storage.NewFileKV(folder, "store.json")
	require.NoError(t, err)
	require.NoError(t, kv.Set("accessToken", "abc123"))

	_, err = os.Stat(filepath.Join(folder, "store.json.tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestMemoryKV(t *testing.T) {
	kv := storage.NewMemoryKV()

	_, err := kv.Get("accessToken")
	require.ErrorIs(t, err, storage.KeyNotFoundErr)

	require.NoError(t, kv.Set("accessToken", "abc123"))
	value, err := kv.Get("accessToken")
	require.NoError(t, err)
	require.Equal(t, "abc123", value)

	require.NoError(t, kv.Delete("accessToken"))
	_, err = kv.Get("accessToken")
	require.ErrorIs(t, err, storage.KeyNotFoundErr)
}
