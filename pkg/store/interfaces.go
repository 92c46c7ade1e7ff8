package store

import (
	"context"

	"wahlpost/pkg/model"
)

// GeocodeCacheStore persists geocode attempts keyed by address hash.
type GeocodeCacheStore interface {
	// GetGeocode returns the cached entry for the key, or nil on a miss.
	GetGeocode(ctx context.Context, key string) (*model.GeocodeCacheEntry, error)
	// PutGeocode upserts the entry. Writes for the same key are idempotent;
	// last write wins.
	PutGeocode(ctx context.Context, e *model.GeocodeCacheEntry) error
}

// ConstituencyStore handles persisted constituency records. The resolver
// only reads; Save exists for sync tooling and tests.
type ConstituencyStore interface {
	// ByScopeAndListID returns records in the scope whose list_id matches
	// any of the candidate representations.
	ByScopeAndListID(ctx context.Context, scope string, listIDs []string) ([]model.Constituency, error)
	// ByScopes returns all records in the given scopes, ordered by id.
	ByScopes(ctx context.Context, scopes ...string) ([]model.Constituency, error)
	SaveConstituency(ctx context.Context, c *model.Constituency) error
}

// Store composes all sub-interfaces for full store access. Consumers should
// depend on specific sub-interfaces when possible.
type Store interface {
	GeocodeCacheStore
	ConstituencyStore

	// Close closes the store connection.
	Close() error
}
