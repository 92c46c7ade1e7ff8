package boundary

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Repository caches boundary indexes per resolved file path for the process
// lifetime, so constructing a locator per request does not re-parse GeoJSON.
// It is injectable: tests use their own Repository with fixture datasets.
type Repository struct {
	mu      sync.Mutex
	indexes map[string]*Index
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{indexes: make(map[string]*Index)}
}

// Get returns the index for the dataset at path, building it on first use.
// A missing file is not an error: Get returns nil so callers can degrade to
// coarser matching. The miss is cached like a hit.
func (r *Repository) Get(path string) (*Index, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.indexes[abs]; ok {
		return idx, nil
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			slog.Debug("Boundary dataset not present", "path", abs)
			r.indexes[abs] = nil
			return nil, nil
		}
		return nil, err
	}

	idx, err := FromDataset(abs)
	if err != nil {
		return nil, err
	}
	r.indexes[abs] = idx
	return idx, nil
}
