package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStore(t *testing.T) {
	t.Run("creates directory with correct permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		baseDir := filepath.Join(tmpDir, "tecai")

		store, err := NewFileStore(baseDir)
		require.NoError(t, err)
		assert.NotNil(t, store)

		info, err := os.Stat(baseDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})
}

func TestFileStore_WriteRead(t *testing.T) {
	t.Run("round trips a value", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write(KeyToken, "abc123"))

		value, ok, err := store.Read(KeyToken)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "abc123", value)
	})

	t.Run("read of absent key is not an error", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		value, ok, err := store.Read(KeyEmail)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("rejects unrecognized keys", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		err = store.Write("favoriteColor", "blue")
		assert.ErrorIs(t, err, ErrUnrecognizedKey)
	})

	t.Run("session file has restrictive permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewFileStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Write(KeyToken, "abc123"))

		info, err := os.Stat(filepath.Join(tmpDir, "session.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		tmpDir := t.TempDir()
		store, err := NewFileStore(tmpDir)
		require.NoError(t, err)

		require.NoError(t, store.Write(KeyToken, "abc123"))

		_, err = os.Stat(filepath.Join(tmpDir, "session.json.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFileStore_Remove(t *testing.T) {
	t.Run("removes an existing key", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Write(KeyToken, "abc123"))
		require.NoError(t, store.Remove(KeyToken))

		_, ok, err := store.Read(KeyToken)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("removing an absent key is a no-op success", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		assert.NoError(t, store.Remove(KeyToken))
	})
}

func TestFileStore_RemoveAll(t *testing.T) {
	t.Run("clears every session key", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		for _, key := range SessionKeys {
			require.NoError(t, store.Write(key, "value-"+key))
		}

		require.NoError(t, store.RemoveAll(SessionKeys))

		for _, key := range SessionKeys {
			_, ok, err := store.Read(key)
			require.NoError(t, err)
			assert.False(t, ok, "key %s should be absent", key)
		}
	})

	t.Run("idempotent when zero, some, or all keys absent", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		// All absent.
		require.NoError(t, store.RemoveAll(SessionKeys))

		// Some present.
		require.NoError(t, store.Write(KeyToken, "abc"))
		require.NoError(t, store.Write(KeyUsername, "maria"))
		require.NoError(t, store.RemoveAll(SessionKeys))

		// Run again with everything already gone.
		require.NoError(t, store.RemoveAll(SessionKeys))

		for _, key := range SessionKeys {
			_, ok, err := store.Read(key)
			require.NoError(t, err)
			assert.False(t, ok)
		}
	})
}

func TestMemStore(t *testing.T) {
	t.Run("round trips a value", func(t *testing.T) {
		store := NewMemStore()

		require.NoError(t, store.Write(KeyToken, "abc123"))

		value, ok, err := store.Read(KeyToken)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "abc123", value)
	})

	t.Run("rejects unrecognized keys", func(t *testing.T) {
		store := NewMemStore()
		assert.ErrorIs(t, store.Write("nope", "x"), ErrUnrecognizedKey)
	})

	t.Run("remove all is idempotent", func(t *testing.T) {
		store := NewMemStore()
		require.NoError(t, store.Write(KeyToken, "abc"))

		require.NoError(t, store.RemoveAll(SessionKeys))
		require.NoError(t, store.RemoveAll(SessionKeys))

		_, ok, err := store.Read(KeyToken)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("partial failure still attempts remaining keys", func(t *testing.T) {
		store := NewMemStore()
		for _, key := range SessionKeys {
			require.NoError(t, store.Write(key, "v"))
		}
		store.FailRemove = map[string]bool{KeyUserID: true}

		err := store.RemoveAll(SessionKeys)
		require.Error(t, err)

		// Every other key was still removed.
		for _, key := range SessionKeys {
			if key == KeyUserID {
				continue
			}
			_, ok, readErr := store.Read(key)
			require.NoError(t, readErr)
			assert.False(t, ok, "key %s should be absent", key)
		}
	})
}

func TestSessionKeys(t *testing.T) {
	// The cleanup contract covers exactly the recognized keys, legacy ones
	// included; dropping any of them would leave stale privilege data.
	assert.Len(t, SessionKeys, 11)
	assert.Contains(t, SessionKeys, KeyLegacyUserData)
	assert.Contains(t, SessionKeys, KeyLegacyUserRole)
}
