package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorages(t *testing.T) {
	fileStorage, err := NewFileStorage(filepath.Join(t.TempDir(), "umeed"))
	require.NoError(t, err)

	storages := map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   fileStorage,
	}
	for name, s := range storages {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.GetItem(SlotKey)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem(SlotKey, "one"))
			require.NoError(t, s.SetItem(SlotKey, "two"))
			v, ok, err := s.GetItem(SlotKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "two", v)

			require.NoError(t, s.RemoveItem(SlotKey))
			require.NoError(t, s.RemoveItem(SlotKey))
			_, ok, err = s.GetItem(SlotKey)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStorage_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "umeed")
	s, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetItem("../"+SlotKey, "x"))

	fi, err := os.Stat(filepath.Join(dir, ".._"+SlotKey+".json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}
