package wahlkreis

import (
	"log/slog"
	"path/filepath"
	"strings"

	"wahlpost/pkg/boundary"
	"wahlpost/pkg/config"
	"wahlpost/pkg/model"
)

// Locator orchestrates district lookups across the federal boundary dataset
// and any loaded state-level datasets.
type Locator struct {
	federal *boundary.Index
	states  map[string]*boundary.Index
}

// Result holds the outcome of a detailed lookup. Federal is always set;
// State only when the matching state dataset is loaded and contains the
// point.
type Result struct {
	Federal *model.District
	State   *model.District
}

// NewLocator builds a locator from the configured dataset paths, loading
// indexes through the shared repository. State files that do not exist are
// simply absent from the state map; partial coverage is expected. A missing
// federal dataset is logged and leaves the locator permanently empty, so the
// coarse fallback matching takes over downstream.
func NewLocator(repo *boundary.Repository, cfg *config.BoundariesConfig) (*Locator, error) {
	federal, err := repo.Get(cfg.Federal)
	if err != nil {
		return nil, err
	}
	if federal == nil {
		slog.Warn("Federal boundary dataset missing, polygon lookups disabled", "path", cfg.Federal)
	}

	states := make(map[string]*boundary.Index)
	for _, code := range StateCodes() {
		path := filepath.Join(cfg.StateDir, strings.ToLower(code)+".geojson")
		idx, err := repo.Get(path)
		if err != nil {
			return nil, err
		}
		if idx != nil {
			states[code] = idx
		}
	}

	if federal != nil {
		slog.Info("Wahlkreis locator ready",
			"federal_districts", federal.Len(), "state_datasets", len(states))
	}

	return &Locator{federal: federal, states: states}, nil
}

// NewLocatorFromIndexes builds a locator directly from indexes. Used by
// tests and tooling that bypass the repository.
func NewLocatorFromIndexes(federal *boundary.Index, states map[string]*boundary.Index) *Locator {
	if states == nil {
		states = make(map[string]*boundary.Index)
	}
	return &Locator{federal: federal, states: states}
}

// Locate returns the federal district containing the point, or nil if the
// point falls outside every federal polygon (e.g. a non-German address).
func (l *Locator) Locate(lat, lon float64) *model.District {
	res := l.LocateDetailed(lat, lon)
	if res == nil {
		return nil
	}
	return res.Federal
}

// LocateDetailed returns both the federal and, where a state dataset is
// loaded, the state district for the point. A state result is never
// returned without a federal anchor: without the federal district there is
// no context for interpreting a state's district numbering.
func (l *Locator) LocateDetailed(lat, lon float64) *Result {
	if l.federal == nil {
		return nil
	}

	fed := l.federal.Lookup(lat, lon)
	if fed == nil {
		return nil
	}

	if fed.StateCode == "" {
		if code, ok := StateCode(fed.StateName); ok {
			fed.StateCode = code
		}
	}

	res := &Result{Federal: fed}

	idx, ok := l.states[fed.StateCode]
	if !ok {
		return res
	}

	if st := idx.Lookup(lat, lon); st != nil {
		if st.StateCode == "" {
			st.StateCode = fed.StateCode
		}
		if st.StateName == "" {
			st.StateName = fed.StateName
		}
		res.State = st
	}

	return res
}
