package boundary

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"wahlpost/pkg/model"
)

// Feature is one electoral-district polygon prepared for containment tests.
// The bounding box is precomputed so lookups can reject most features
// without an exact polygon test.
type Feature struct {
	District model.District

	bound    orb.Bound
	geometry orb.Geometry
}

// newFeature builds a Feature from a raw GeoJSON feature. Features without
// a polygonal geometry are skipped (ok=false).
func newFeature(f *geojson.Feature, source string) (feat *Feature, ok bool) {
	if f == nil || f.Geometry == nil {
		return nil, false
	}

	geom, repaired := repairGeometry(f.Geometry)
	if geom == nil {
		return nil, false
	}

	d := normalizeProperties(f.Properties)
	if repaired {
		slog.Warn("Repaired invalid boundary geometry",
			"dataset", source, "district", d.Number, "name", d.Name)
	}

	return &Feature{
		District: d,
		bound:    geom.Bound(),
		geometry: geom,
	}, true
}

// Contains reports whether the point lies inside the feature's polygon.
// The bounding-box test is necessary but not sufficient; a hit there still
// requires the exact containment test.
func (f *Feature) Contains(p orb.Point) bool {
	if !f.bound.Contains(p) {
		return false
	}
	return containsPoint(f.geometry, p)
}

// containsPoint checks if a geometry contains a point.
func containsPoint(geom orb.Geometry, point orb.Point) bool {
	switch g := geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point)
	case orb.MultiPolygon:
		for _, poly := range g {
			if planar.PolygonContains(poly, point) {
				return true
			}
		}
	}
	return false
}

// repairGeometry closes unclosed rings and drops degenerate ones so that
// invalid source polygons are indexed instead of silently rejected.
// Returns nil for non-polygonal geometries.
func repairGeometry(geom orb.Geometry) (orb.Geometry, bool) {
	switch g := geom.(type) {
	case orb.Polygon:
		poly, repaired := repairPolygon(g)
		if len(poly) == 0 {
			return nil, false
		}
		return poly, repaired
	case orb.MultiPolygon:
		var out orb.MultiPolygon
		repaired := false
		for _, p := range g {
			poly, r := repairPolygon(p)
			if len(poly) == 0 {
				repaired = true
				continue
			}
			repaired = repaired || r
			out = append(out, poly)
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, repaired
	}
	return nil, false
}

func repairPolygon(p orb.Polygon) (orb.Polygon, bool) {
	var out orb.Polygon
	repaired := false
	for _, ring := range p {
		if len(ring) < 3 {
			repaired = true
			continue
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
			repaired = true
		}
		out = append(out, ring)
	}
	return out, repaired
}
