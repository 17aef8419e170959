package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreWrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Write(context.Background(), "serum/serum_1x1_v1.png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "serum/serum_1x1_v1.png", key)

	data, err := os.ReadFile(store.Path(key))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestFileStoreWriteRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "   ", "../escape.png", "a/../../escape.png"} {
		_, err := store.Write(context.Background(), key, []byte("x"))
		assert.Error(t, err, "key %q", key)
	}
}

func TestFileStoreWriteHonorsContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Write(ctx, "serum/a.png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStoreListDir(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	names, err := store.ListDir("serum")
	require.NoError(t, err)
	assert.Empty(t, names, "missing directory lists as empty")

	_, err = store.Write(context.Background(), "serum/a.png", []byte("x"))
	require.NoError(t, err)
	_, err = store.Write(context.Background(), "serum/b.png", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(store.BasePath(), "serum", "nested"), 0o755))

	names, err = store.ListDir("serum")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.png", "b.png"}, names)
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	_, err := NewFileStore("  ")
	assert.Error(t, err)
}
