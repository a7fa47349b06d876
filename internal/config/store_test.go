package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rnoeerrors "github.com/readnoevil/rnoe/internal/errors"
	"github.com/readnoevil/rnoe/internal/markup"
)

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, rnoeerrors.IsNotFound(err), "want not-found, got %v", err)
}

func TestStoreLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: x\ngarbage line\n"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.True(t, rnoeerrors.IsMalformed(err), "want malformed, got %v", err)
}

func TestStoreLoadNonMappingRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o644))

	_, err := NewStore(path).Load()
	require.Error(t, err)
	assert.True(t, rnoeerrors.IsMalformed(err), "want malformed, got %v", err)
}

func TestStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)

	doc := DefaultDocument(0.5)
	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, Threshold(loaded), 1e-9)
	assert.Empty(t, Accounts(loaded))
}

func TestStoreSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.yaml")
	store := NewStore(path)

	require.NoError(t, store.Save(DefaultDocument(0.5)))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	store := NewStore(path)

	require.NoError(t, store.Save(DefaultDocument(0.5)))
	require.NoError(t, store.Save(DefaultDocument(0.9)))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.9, Threshold(loaded), 1e-9)

	// No temp files linger after successful saves.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}

func TestStoreSaveFailureLeavesOriginalUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	store := NewStore(path)
	require.NoError(t, store.Save(DefaultDocument(0.5)))

	// A non-mapping document is rejected before any file is touched.
	err := store.Save(markup.SequenceValue())
	require.Error(t, err)

	loaded, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.InDelta(t, 0.5, Threshold(loaded), 1e-9)
}

func TestStoreSaveRenameFailureLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	// A non-empty directory at the target path makes the final rename fail
	// after the temp file has been written. Directory permissions cannot
	// force this: root ignores them.
	require.NoError(t, os.Mkdir(path, 0o755))
	inner := filepath.Join(path, "keep.txt")
	require.NoError(t, os.WriteFile(inner, []byte("untouched\n"), 0o644))

	err := NewStore(path).Save(DefaultDocument(0.5))
	require.Error(t, err)
	assert.True(t, rnoeerrors.IsIO(err), "want io error, got %v", err)

	data, readErr := os.ReadFile(inner)
	require.NoError(t, readErr)
	assert.Equal(t, "untouched\n", string(data))

	entries, dirErr := os.ReadDir(dir)
	require.NoError(t, dirErr)
	require.Len(t, entries, 1, "failed save must not leave a temp file")
	assert.Equal(t, "config.yaml", entries[0].Name())
}

func TestStoreSaveRejectsNonMapping(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	assert.Error(t, store.Save(markup.IntValue(7)))
	assert.Error(t, store.Save(markup.SequenceValue(markup.IntValue(1))))
}
