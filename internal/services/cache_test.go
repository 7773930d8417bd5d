package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroboard/internal/domain"
)

func TestSnapshotCacheRoundTrip(t *testing.T) {
	cache := &SnapshotCache{path: filepath.Join(t.TempDir(), "snapshots.json")}

	raw := domain.DatasetSnapshot{TotalSize: "1.00 MB", FileCount: 1, Files: []string{"a.csv"}}
	processed := domain.DatasetSnapshot{TotalSize: "2.00 MB", FileCount: 1, Files: []string{"a_updated.csv"}}
	cache.Save(raw, processed)

	loadedRaw, loadedProcessed, ok := cache.Load()
	require.True(t, ok)
	assert.Equal(t, raw, loadedRaw)
	assert.Equal(t, processed, loadedProcessed)
}

func TestSnapshotCacheMissingFile(t *testing.T) {
	cache := &SnapshotCache{path: filepath.Join(t.TempDir(), "missing.json")}

	_, _, ok := cache.Load()
	assert.False(t, ok)
}

func TestSnapshotCacheRejectsCorruptOrUnknownVersion(t *testing.T) {
	dir := t.TempDir()

	corrupt := &SnapshotCache{path: filepath.Join(dir, "corrupt.json")}
	require.NoError(t, os.WriteFile(corrupt.path, []byte("{not json"), 0o600))
	_, _, ok := corrupt.Load()
	assert.False(t, ok)

	wrongVersion := &SnapshotCache{path: filepath.Join(dir, "version.json")}
	require.NoError(t, os.WriteFile(wrongVersion.path, []byte(`{"version": 99}`), 0o600))
	_, _, ok = wrongVersion.Load()
	assert.False(t, ok)
}

func TestSnapshotCacheNoPathIsNoop(t *testing.T) {
	cache := &SnapshotCache{}
	cache.Save(domain.DatasetSnapshot{}, domain.DatasetSnapshot{})
	_, _, ok := cache.Load()
	assert.False(t, ok)
}
