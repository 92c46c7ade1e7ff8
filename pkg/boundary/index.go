package boundary

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"wahlpost/pkg/model"
)

// Index answers point-containment queries over one boundary dataset.
// It is immutable after construction and safe for concurrent reads.
type Index struct {
	features []*Feature
}

// FromDataset loads a GeoJSON FeatureCollection from the given path and
// builds an index over its polygons.
func FromDataset(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read boundary dataset %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse boundary dataset %s: %w", path, err)
	}

	idx := &Index{}
	skipped := 0
	source := filepath.Base(path)
	for _, f := range fc.Features {
		feat, ok := newFeature(f, source)
		if !ok {
			skipped++
			continue
		}
		idx.features = append(idx.features, feat)
	}

	slog.Info("Loaded boundary dataset",
		"path", path, "districts", len(idx.features), "skipped", skipped)
	return idx, nil
}

// Lookup returns the district containing the point, or nil if the point
// falls in no polygon. Features are tested in load order; where polygons
// overlap (they should not within one dataset) the first match wins.
func (idx *Index) Lookup(lat, lon float64) *model.District {
	p := orb.Point{lon, lat} // orb uses [lon, lat] order
	for _, f := range idx.features {
		if f.Contains(p) {
			d := f.District
			return &d
		}
	}
	return nil
}

// Len returns the number of indexed districts.
func (idx *Index) Len() int {
	return len(idx.features)
}
