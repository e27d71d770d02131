package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "conf", "settings.json"), nil)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store := newTestStore(t)

	settings := store.Load()
	require.Equal(t, DefaultSettings(), settings)
}

func TestLoad_CorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewStore(path, nil)
	require.Equal(t, DefaultSettings(), store.Load())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := Settings{
		CurrentImagePath: "/media/fox.webp",
		Speed:            24,
		Scale:            1.5,
		WindowWidth:      800,
		WindowHeight:     600,
	}
	store.Save(want)

	require.Equal(t, want, store.Load())
}

func TestSave_UnwritableDirectoryIsSwallowed(t *testing.T) {
	// Using a regular file as parent directory makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := NewStore(filepath.Join(blocker, "settings.json"), nil)
	store.Save(DefaultSettings()) // must not panic

	require.Equal(t, DefaultSettings(), store.Load())
}
