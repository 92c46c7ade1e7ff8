package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wahlpost/pkg/db"
	"wahlpost/pkg/model"
)

// SQLiteStore implements Store.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(d *db.DB) *SQLiteStore {
	return &SQLiteStore{db: d}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Geocode Cache ---

func (s *SQLiteStore) GetGeocode(ctx context.Context, key string) (*model.GeocodeCacheEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, street, postal_code, city, country, lat, lon, success, error, updated_at
		 FROM geocode_cache WHERE key = ?`, key)

	var e model.GeocodeCacheEntry
	var lat, lon sql.NullFloat64
	var errMsg sql.NullString

	err := row.Scan(
		&e.Key, &e.Address.Street, &e.Address.PostalCode, &e.Address.City, &e.Address.Country,
		&lat, &lon, &e.Success, &errMsg, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Miss
		}
		return nil, err
	}

	if lat.Valid {
		e.Lat = lat.Float64
	}
	if lon.Valid {
		e.Lon = lon.Float64
	}
	if errMsg.Valid {
		e.Error = errMsg.String
	}

	return &e, nil
}

func (s *SQLiteStore) PutGeocode(ctx context.Context, e *model.GeocodeCacheEntry) error {
	var lat, lon sql.NullFloat64
	if e.Success {
		lat = sql.NullFloat64{Float64: e.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: e.Lon, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO geocode_cache (key, street, postal_code, city, country, lat, lon, success, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			lat = excluded.lat,
			lon = excluded.lon,
			success = excluded.success,
			error = excluded.error,
			updated_at = CURRENT_TIMESTAMP`,
		e.Key, e.Address.Street, e.Address.PostalCode, e.Address.City, e.Address.Country,
		lat, lon, e.Success, e.Error,
	)
	return err
}

// --- Constituencies ---

func (s *SQLiteStore) ByScopeAndListID(ctx context.Context, scope string, listIDs []string) ([]model.Constituency, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}

	query := `SELECT id, external_id, scope, list_id, name, state_name, metadata
			  FROM constituency WHERE scope = ? AND list_id IN (` +
		strings.TrimSuffix(strings.Repeat("?,", len(listIDs)), ",") + `) ORDER BY id`
	args := make([]any, 0, len(listIDs)+1)
	args = append(args, scope)
	for _, id := range listIDs {
		args = append(args, id)
	}

	return s.queryConstituencies(ctx, query, args...)
}

func (s *SQLiteStore) ByScopes(ctx context.Context, scopes ...string) ([]model.Constituency, error) {
	if len(scopes) == 0 {
		return nil, nil
	}

	query := `SELECT id, external_id, scope, list_id, name, state_name, metadata
			  FROM constituency WHERE scope IN (` +
		strings.TrimSuffix(strings.Repeat("?,", len(scopes)), ",") + `) ORDER BY id`
	args := make([]any, len(scopes))
	for i, sc := range scopes {
		args[i] = sc
	}

	return s.queryConstituencies(ctx, query, args...)
}

func (s *SQLiteStore) SaveConstituency(ctx context.Context, c *model.Constituency) error {
	var meta []byte
	if c.Metadata != nil {
		var err error
		meta, err = json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO constituency (external_id, scope, list_id, name, state_name, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(external_id) DO UPDATE SET
			scope = excluded.scope,
			list_id = excluded.list_id,
			name = excluded.name,
			state_name = excluded.state_name,
			metadata = excluded.metadata`,
		c.ExternalID, c.Scope, c.ListID, c.Name, c.StateName, nullableText(meta),
	)
	if err != nil {
		return err
	}

	if c.ID == 0 {
		if id, err := res.LastInsertId(); err == nil {
			c.ID = id
		}
	}
	return nil
}

func (s *SQLiteStore) queryConstituencies(ctx context.Context, query string, args ...any) ([]model.Constituency, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Constituency
	for rows.Next() {
		var c model.Constituency
		var listID, name, stateName, meta sql.NullString
		if err := rows.Scan(&c.ID, &c.ExternalID, &c.Scope, &listID, &name, &stateName, &meta); err != nil {
			return nil, err
		}
		c.ListID = listID.String
		c.Name = name.String
		c.StateName = stateName.String
		if meta.Valid && meta.String != "" {
			if err := json.Unmarshal([]byte(meta.String), &c.Metadata); err != nil {
				return nil, fmt.Errorf("corrupt metadata for constituency %s: %w", c.ExternalID, err)
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullableText(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
