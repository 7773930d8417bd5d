package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"hydroboard/internal/domain"
)

const snapshotCacheVersion = 1

type snapshotCacheFile struct {
	Version   int                    `json:"version"`
	SavedAt   int64                  `json:"savedAt"`
	Raw       domain.DatasetSnapshot `json:"raw"`
	Processed domain.DatasetSnapshot `json:"processed"`
}

// SnapshotCache persists the last fetched snapshots so the dashboard has
// something to show before the first fetch completes. Writes are best
// effort; a broken cache is treated as empty.
type SnapshotCache struct {
	path string
}

func NewSnapshotCache() *SnapshotCache {
	base, err := os.UserCacheDir()
	if err != nil {
		return &SnapshotCache{}
	}
	return &SnapshotCache{path: filepath.Join(base, "hydroboard", "snapshots.json")}
}

func (cache *SnapshotCache) Load() (raw, processed domain.DatasetSnapshot, ok bool) {
	if cache.path == "" {
		return domain.DatasetSnapshot{}, domain.DatasetSnapshot{}, false
	}
	data, err := os.ReadFile(cache.path)
	if err != nil {
		return domain.DatasetSnapshot{}, domain.DatasetSnapshot{}, false
	}
	var stored snapshotCacheFile
	if err := json.Unmarshal(data, &stored); err != nil || stored.Version != snapshotCacheVersion {
		return domain.DatasetSnapshot{}, domain.DatasetSnapshot{}, false
	}
	return stored.Raw, stored.Processed, true
}

func (cache *SnapshotCache) Save(raw, processed domain.DatasetSnapshot) {
	if cache.path == "" {
		return
	}
	stored := snapshotCacheFile{
		Version:   snapshotCacheVersion,
		SavedAt:   time.Now().UnixNano(),
		Raw:       raw,
		Processed: processed,
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(cache.path), 0o755)
	_ = os.WriteFile(cache.path, data, 0o600)
}
