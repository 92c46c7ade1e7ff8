package resolve

import (
	"context"
	"log/slog"
	"strings"

	"wahlpost/pkg/model"
	"wahlpost/pkg/wahlkreis"
)

// CoarseQuery is a degraded lookup for contexts without a full address or
// without polygon coverage (not every state ships a boundary dataset).
type CoarseQuery struct {
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	StateName  string `json:"state_name"`
}

// Metadata keys consulted by the coarse matchers. Sync tooling stores a
// comma-separated list of postal-code prefixes and the district's main city.
const (
	metaPostalPrefixes = "postal_prefixes"
	metaCity           = "city"
)

// matcher is one strategy in the fallback chain. It returns an empty slice
// when it cannot produce a match.
type matcher struct {
	name string
	fn   func(ctx context.Context, q CoarseQuery) ([]model.Constituency, error)
}

// ResolveCoarse evaluates the fallback strategies in priority order and
// returns the first non-empty match: local (postal prefix or city name),
// then state name, then the lowest-ID federal constituency as the
// always-available default.
func (r *Resolver) ResolveCoarse(ctx context.Context, q CoarseQuery) ([]model.Constituency, error) {
	chain := []matcher{
		{"local", r.matchLocal},
		{"state", r.matchState},
		{"default", r.matchDefault},
	}

	for _, m := range chain {
		found, err := m.fn(ctx, q)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			slog.Debug("Coarse resolution matched", "strategy", m.name, "count", len(found))
			return found, nil
		}
	}
	return []model.Constituency{}, nil
}

// matchLocal matches district constituencies by postal-code prefix or
// city-name substring against stored metadata.
func (r *Resolver) matchLocal(ctx context.Context, q CoarseQuery) ([]model.Constituency, error) {
	if q.PostalCode == "" && q.City == "" {
		return nil, nil
	}

	all, err := r.store.ByScopes(ctx, model.ScopeFederalDistrict, model.ScopeStateDistrict)
	if err != nil {
		return nil, err
	}

	var out []model.Constituency
	for _, c := range all {
		if matchesLocal(c, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func matchesLocal(c model.Constituency, q CoarseQuery) bool {
	if q.PostalCode != "" {
		for _, prefix := range strings.Split(c.Metadata[metaPostalPrefixes], ",") {
			prefix = strings.TrimSpace(prefix)
			if prefix != "" && strings.HasPrefix(q.PostalCode, prefix) {
				return true
			}
		}
	}
	if q.City != "" {
		city := strings.ToLower(q.City)
		if strings.Contains(strings.ToLower(c.Name), city) {
			return true
		}
		if meta := c.Metadata[metaCity]; meta != "" && strings.Contains(strings.ToLower(meta), city) {
			return true
		}
	}
	return false
}

// matchState matches state-level constituencies by normalized state name.
func (r *Resolver) matchState(ctx context.Context, q CoarseQuery) ([]model.Constituency, error) {
	if q.StateName == "" {
		return nil, nil
	}

	all, err := r.store.ByScopes(ctx, model.ScopeStateDistrict, model.ScopeStateList)
	if err != nil {
		return nil, err
	}

	var out []model.Constituency
	for _, c := range all {
		if wahlkreis.SameState(c.StateName, q.StateName) {
			out = append(out, c)
		}
	}
	return out, nil
}

// matchDefault returns the lowest-ID federal constituency so the chain
// always terminates with something to suggest.
func (r *Resolver) matchDefault(ctx context.Context, _ CoarseQuery) ([]model.Constituency, error) {
	all, err := r.store.ByScopes(ctx, model.ScopeFederalDistrict)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[:1], nil
}
