// Command shp2geojson converts an electoral-district boundary shapefile to
// the GeoJSON consumed by pkg/boundary, remapping source attribute names to
// the canonical WKR_NR/WKR_NAME/LAND_NAME/LAND_CODE keys.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func main() {
	inputPath := flag.String("input", "", "Path to input .shp file")
	outputPath := flag.String("output", "", "Path to output .geojson file")
	fieldMap := flag.String("map", "", "Attribute remapping, e.g. WKRNR=WKR_NR,LANDNAME=LAND_NAME")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Input and output paths are required")
	}

	mapping, err := parseMapping(*fieldMap)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(*inputPath, *outputPath, mapping); err != nil {
		log.Fatal(err)
	}
}

func parseMapping(s string) (map[string]string, error) {
	mapping := make(map[string]string)
	if s == "" {
		return mapping, nil
	}
	for _, pair := range strings.Split(s, ",") {
		src, dst, ok := strings.Cut(pair, "=")
		if !ok || src == "" || dst == "" {
			return nil, fmt.Errorf("invalid mapping entry %q", pair)
		}
		mapping[src] = dst
	}
	return mapping, nil
}

func run(inputPath, outputPath string, mapping map[string]string) error {
	shape, err := shp.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	fields := shape.Fields()
	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		name := f.String()
		if mapped, ok := mapping[name]; ok {
			name = mapped
		}
		fieldNames[i] = name
	}

	fc := geojson.NewFeatureCollection()
	skipped := 0

	for shape.Next() {
		n, p := shape.Shape()

		poly, ok := p.(*shp.Polygon)
		if !ok {
			// Boundary datasets are polygons only
			skipped++
			continue
		}

		f := geojson.NewFeature(convertPolygon(poly))
		for i, name := range fieldNames {
			f.Properties[name] = shape.ReadAttribute(n, i)
		}
		fc.Append(f)
	}

	if err := shape.Err(); err != nil {
		return fmt.Errorf("error iterating shapes: %w", err)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Converted %d districts to %s (%d non-polygon shapes skipped)\n",
		len(fc.Features), outputPath, skipped)
	return nil
}

func convertPolygon(s *shp.Polygon) orb.Polygon {
	// Treat all parts as rings of a single polygon
	var poly orb.Polygon

	for i := 0; i < int(s.NumParts); i++ {
		start := s.Parts[i]
		end := s.NumPoints
		if i < int(s.NumParts)-1 {
			end = s.Parts[i+1]
		}

		var ring orb.Ring
		for j := start; j < end; j++ {
			ring = append(ring, orb.Point{s.Points[j].X, s.Points[j].Y})
		}
		poly = append(poly, ring)
	}
	return poly
}
