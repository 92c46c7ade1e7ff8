package boundary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRepositoryMissingFile(t *testing.T) {
	repo := NewRepository()

	idx, err := repo.Get(filepath.Join(t.TempDir(), "absent.geojson"))
	if err != nil {
		t.Fatalf("Missing dataset must not be an error: %v", err)
	}
	if idx != nil {
		t.Errorf("Expected nil index for missing file, got %v", idx)
	}
}

func TestRepositoryCachesPerPath(t *testing.T) {
	path := writeFixture(t, "cached.geojson", lShapedFixture)
	repo := NewRepository()

	first, err := repo.Get(path)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if first == nil {
		t.Fatal("Expected index")
	}

	// Deleting the file must not matter: the index is built once per process
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := repo.Get(path)
	if err != nil {
		t.Fatalf("Cached Get failed: %v", err)
	}
	if second != first {
		t.Error("Expected the cached index instance to be reused")
	}
}
