package wahlkreis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// District numbers arrive as ints, zero-padded strings or floats depending
// on the per-state source schema. All comparisons go through the canonical
// zero-padded forms produced here.

// FederalListID normalizes a district number to the 3-digit federal
// convention ("075"). Returns "" if the value carries no usable number.
func FederalListID(v any) string {
	n, _, ok := districtNumber(v)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%03d", n)
}

// StateListID normalizes a district number to the state convention
// ("BE-0004"). Returns "" if the value carries no usable number.
func StateListID(stateCode string, v any) string {
	n, _, ok := districtNumber(v)
	if !ok || stateCode == "" {
		return ""
	}
	return fmt.Sprintf("%s-%04d", strings.ToUpper(stateCode), n)
}

// ListIDCandidates returns the representations under which a district
// number may appear in persisted records: the raw string, the
// int-normalized string, and the zero-padded federal form.
func ListIDCandidates(v any) []string {
	n, raw, ok := districtNumber(v)
	if !ok {
		if raw == "" {
			return nil
		}
		return []string{raw}
	}

	candidates := []string{raw, strconv.Itoa(n), fmt.Sprintf("%03d", n)}

	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// districtNumber extracts an integer district number from the heterogeneous
// representations found in source data.
func districtNumber(v any) (n int, raw string, ok bool) {
	switch val := v.(type) {
	case int:
		return val, strconv.Itoa(val), true
	case int64:
		return int(val), strconv.FormatInt(val, 10), true
	case float64:
		return int(val), strconv.FormatFloat(val, 'f', -1, 64), true
	case json.Number:
		raw = val.String()
		if i, err := val.Int64(); err == nil {
			return int(i), raw, true
		}
		if f, err := val.Float64(); err == nil {
			return int(f), raw, true
		}
		return 0, raw, false
	case string:
		raw = strings.TrimSpace(val)
		if raw == "" {
			return 0, "", false
		}
		if i, err := strconv.Atoi(raw); err == nil {
			return i, raw, true
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return int(f), raw, true
		}
		return 0, raw, false
	}
	return 0, "", false
}
