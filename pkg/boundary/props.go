package boundary

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"

	"wahlpost/pkg/model"
)

// Canonical property keys of a normalized boundary dataset. Source files
// with other schemas are remapped by cmd/shp2geojson before loading.
const (
	propNumber    = "WKR_NR"
	propName      = "WKR_NAME"
	propStateName = "LAND_NAME"
	propStateCode = "LAND_CODE"
)

// normalizeProperties converts the raw property map of a feature into the
// fixed District record. District numbers arrive as ints, floats or strings
// depending on the source state; all are accepted.
func normalizeProperties(props geojson.Properties) model.District {
	return model.District{
		Number:    getIntProp(props, propNumber),
		Name:      getStringProp(props, propName),
		StateName: getStringProp(props, propStateName),
		StateCode: strings.ToUpper(getStringProp(props, propStateCode)),
	}
}

// getStringProp safely extracts a string property from GeoJSON properties.
func getStringProp(props geojson.Properties, key string) string {
	val, ok := props[key]
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// getIntProp extracts an integer property, tolerating float and string
// representations.
func getIntProp(props geojson.Properties, key string) int {
	val, ok := props[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}
