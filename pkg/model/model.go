package model

// Constituency scope constants. A citizen belongs to one federal district,
// but may simultaneously belong to list-based groupings at other levels.
const (
	ScopeFederalDistrict = "federal_district"
	ScopeFederalList     = "federal_list"
	ScopeStateDistrict   = "state_district"
	ScopeStateList       = "state_list"
	ScopeEUAtLarge       = "eu_at_large"
)

// District holds the normalized properties of one electoral-district polygon.
// Raw per-state property maps are normalized to this shape at load time;
// downstream code never sees heterogeneous keys.
type District struct {
	Number    int    `json:"number"`
	Name      string `json:"name"`
	StateName string `json:"state_name"`
	StateCode string `json:"state_code"`
}

// Constituency represents a persisted electoral district or list grouping.
// ListID follows a zero-padded scheme that differs by level: 3 digits for
// federal districts ("075"), "CODE-0004" for state districts.
type Constituency struct {
	ID         int64             `json:"id"`
	ExternalID string            `json:"external_id"`
	Scope      string            `json:"scope"`
	ListID     string            `json:"list_id"`
	Name       string            `json:"name"`
	StateName  string            `json:"state_name"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
