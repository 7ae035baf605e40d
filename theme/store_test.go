package theme_test

import (
	"testing"

	"github.com/jrsteele09/go-storefront-client/storage"
	"github.com/jrsteele09/go-storefront-client/theme"
	"github.com/stretchr/testify/require"
)

func TestStoreDefaultsToDark(t *testing.T) {
	store, err := theme.NewStore(storage.NewMemoryKV())
	require.NoError(t, err)

	require.Equal(t, theme.Dark, store.Current())
	require.True(t, store.IsDark())
}

func TestStoreToggle(t *testing.T) {
	kv := storage.NewMemoryKV()
	store, err := theme.NewStore(kv)
	require.NoError(t, err)

	next, err := store.Toggle()
	require.NoError(t, err)
	require.Equal(t, theme.Light, next)
	require.False(t, store.IsDark())

	// Persisted under the fixed key, visible to a fresh store
	reopened, err := theme.NewStore(kv)
	require.NoError(t, err)
	require.Equal(t, theme.Light, reopened.Current())

	next, err = store.Toggle()
	require.NoError(t, err)
	require.Equal(t, theme.Dark, next)
}

func TestStoreRejectsUnknownTheme(t *testing.T) {
	store, err := theme.NewStore(storage.NewMemoryKV())
	require.NoError(t, err)

	require.Error(t, store.Set("sepia"))
}

func TestStoreIgnoresCorruptValue(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set("theme", "blurple"))

	store, err := theme.NewStore(kv)
	require.NoError(t, err)
	require.Equal(t, theme.Dark, store.Current())
}
