package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"wahlpost/pkg/model"
	"wahlpost/pkg/store"
	"wahlpost/pkg/wahlkreis"
)

// Geocoder converts an address into coordinates. Failures are reported in
// the result, never as errors.
type Geocoder interface {
	Geocode(ctx context.Context, addr model.Address) model.GeocodeResult
}

// Locator finds the electoral districts containing a coordinate.
type Locator interface {
	LocateDetailed(lat, lon float64) *wahlkreis.Result
}

// Result is the outcome of resolving an address. When geocoding or the
// polygon lookup fails, all fields are empty; that is the expected
// "no suggestion available" terminal case, not an error.
type Result struct {
	FederalWahlkreisNumber string               `json:"federal_wahlkreis_number,omitempty"`
	StateWahlkreisNumber   string               `json:"state_wahlkreis_number,omitempty"`
	EUWahlkreis            string               `json:"eu_wahlkreis,omitempty"`
	Constituencies         []model.Constituency `json:"constituencies"`
}

// Resolver maps raw street addresses to persisted constituency records.
type Resolver struct {
	geocoder Geocoder
	locator  Locator
	store    store.ConstituencyStore
}

// New creates a Resolver.
func New(g Geocoder, l Locator, s store.ConstituencyStore) *Resolver {
	return &Resolver{geocoder: g, locator: l, store: s}
}

// Resolve runs the strictly sequential geocode → locate → reconcile
// pipeline. It returns an error only for store failures; geocoding misses
// and uncovered coordinates degrade to an empty result.
func (r *Resolver) Resolve(ctx context.Context, addr model.Address) (*Result, error) {
	res := &Result{Constituencies: []model.Constituency{}}

	geo := r.geocoder.Geocode(ctx, addr)
	if !geo.Success {
		slog.Debug("Geocoding failed, returning empty resolution", "error", geo.Error)
		return res, nil
	}

	loc := r.locator.LocateDetailed(geo.Lat, geo.Lon)
	if loc == nil || loc.Federal == nil {
		slog.Debug("Coordinates outside all federal polygons", "lat", geo.Lat, "lon", geo.Lon)
		return res, nil
	}

	res.FederalWahlkreisNumber = wahlkreis.FederalListID(loc.Federal.Number)

	federal, err := r.store.ByScopeAndListID(ctx, model.ScopeFederalDistrict,
		wahlkreis.ListIDCandidates(loc.Federal.Number))
	if err != nil {
		return nil, fmt.Errorf("federal constituency lookup failed: %w", err)
	}
	if len(federal) == 0 {
		// Sync gap between boundary data and constituency records; the
		// partial result is still returned.
		slog.Warn("No constituency record for federal district",
			"district", loc.Federal.Number, "list_id", res.FederalWahlkreisNumber)
	}
	res.Constituencies = append(res.Constituencies, federal...)

	if loc.Federal.StateName != "" {
		states, err := r.store.ByScopes(ctx, model.ScopeStateDistrict, model.ScopeStateList)
		if err != nil {
			return nil, fmt.Errorf("state constituency lookup failed: %w", err)
		}
		for _, c := range states {
			if wahlkreis.SameState(c.StateName, loc.Federal.StateName) {
				res.Constituencies = append(res.Constituencies, c)
			}
		}
	}

	if loc.State != nil {
		res.StateWahlkreisNumber = wahlkreis.StateListID(loc.State.StateCode, loc.State.Number)
	}

	eu, err := r.store.ByScopes(ctx, model.ScopeEUAtLarge)
	if err != nil {
		return nil, fmt.Errorf("eu constituency lookup failed: %w", err)
	}
	if len(eu) > 0 {
		res.EUWahlkreis = eu[0].ListID
		if res.EUWahlkreis == "" {
			res.EUWahlkreis = eu[0].Name
		}
		res.Constituencies = append(res.Constituencies, eu...)
	}

	return res, nil
}
