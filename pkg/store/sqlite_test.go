package store

import (
	"context"
	"path/filepath"
	"testing"

	"wahlpost/pkg/db"
	"wahlpost/pkg/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	d, err := db.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to init DB: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewSQLiteStore(d)
}

func TestGeocodeCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("MissReturnsNil", func(t *testing.T) {
		e, err := store.GetGeocode(ctx, "unknown")
		if err != nil {
			t.Fatalf("GetGeocode failed: %v", err)
		}
		if e != nil {
			t.Errorf("Expected nil on miss, got %+v", e)
		}
	})

	t.Run("PutAndGet", func(t *testing.T) {
		addr := model.Address{Street: "Platz der Republik 1", PostalCode: "11011", City: "Berlin", Country: "DE"}
		entry := &model.GeocodeCacheEntry{
			Key:     addr.CacheKey(),
			Address: addr,
			Lat:     52.5186,
			Lon:     13.3761,
			Success: true,
		}
		if err := store.PutGeocode(ctx, entry); err != nil {
			t.Fatalf("PutGeocode failed: %v", err)
		}

		got, err := store.GetGeocode(ctx, addr.CacheKey())
		if err != nil {
			t.Fatalf("GetGeocode failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected hit")
		}
		if !got.Success || got.Lat != 52.5186 || got.Lon != 13.3761 {
			t.Errorf("Entry mismatch: %+v", got)
		}
		if got.Address.City != "Berlin" {
			t.Errorf("Address components not persisted: %+v", got.Address)
		}
	})

	t.Run("FailureCachedAndUpsert", func(t *testing.T) {
		addr := model.Address{Street: "Nowhere 1", City: "Atlantis", Country: "DE"}
		fail := &model.GeocodeCacheEntry{
			Key:     addr.CacheKey(),
			Address: addr,
			Success: false,
			Error:   "no results",
		}
		if err := store.PutGeocode(ctx, fail); err != nil {
			t.Fatalf("PutGeocode failed: %v", err)
		}

		got, err := store.GetGeocode(ctx, addr.CacheKey())
		if err != nil || got == nil {
			t.Fatalf("GetGeocode failed: %v %v", got, err)
		}
		if got.Success || got.Error != "no results" {
			t.Errorf("Failure entry mismatch: %+v", got)
		}

		// Last write wins for the same key
		fail.Success = true
		fail.Lat, fail.Lon = 1.0, 2.0
		fail.Error = ""
		if err := store.PutGeocode(ctx, fail); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		got, _ = store.GetGeocode(ctx, addr.CacheKey())
		if !got.Success || got.Lat != 1.0 {
			t.Errorf("Upsert not applied: %+v", got)
		}
	})
}

func TestConstituencies(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []model.Constituency{
		{ExternalID: "wk-75", Scope: model.ScopeFederalDistrict, ListID: "075", Name: "Berlin-Mitte", StateName: "Berlin"},
		{ExternalID: "wk-76", Scope: model.ScopeFederalDistrict, ListID: "076", Name: "Berlin-Pankow", StateName: "Berlin",
			Metadata: map[string]string{"postal_prefixes": "130,131"}},
		{ExternalID: "ll-be", Scope: model.ScopeStateList, Name: "Landesliste Berlin", StateName: "Berlin"},
		{ExternalID: "eu-de", Scope: model.ScopeEUAtLarge, ListID: "DE", Name: "Europawahl Deutschland"},
	}
	for i := range seed {
		if err := store.SaveConstituency(ctx, &seed[i]); err != nil {
			t.Fatalf("SaveConstituency failed: %v", err)
		}
		if seed[i].ID == 0 {
			t.Error("Expected ID to be populated after save")
		}
	}

	t.Run("ByScopeAndListID", func(t *testing.T) {
		got, err := store.ByScopeAndListID(ctx, model.ScopeFederalDistrict, []string{"75", "075"})
		if err != nil {
			t.Fatalf("ByScopeAndListID failed: %v", err)
		}
		if len(got) != 1 || got[0].ExternalID != "wk-75" {
			t.Errorf("Expected wk-75, got %+v", got)
		}
	})

	t.Run("ByScopes", func(t *testing.T) {
		got, err := store.ByScopes(ctx, model.ScopeFederalDistrict, model.ScopeStateList)
		if err != nil {
			t.Fatalf("ByScopes failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Expected 3 records, got %d", len(got))
		}
		// Ordered by id: lowest first
		if got[0].ExternalID != "wk-75" {
			t.Errorf("Expected id ordering, got %s first", got[0].ExternalID)
		}
		// Metadata round-trips
		var pankow *model.Constituency
		for i := range got {
			if got[i].ExternalID == "wk-76" {
				pankow = &got[i]
			}
		}
		if pankow == nil || pankow.Metadata["postal_prefixes"] != "130,131" {
			t.Errorf("Metadata not round-tripped: %+v", pankow)
		}
	})

	t.Run("UpsertByExternalID", func(t *testing.T) {
		updated := model.Constituency{ExternalID: "wk-75", Scope: model.ScopeFederalDistrict, ListID: "075", Name: "Berlin-Mitte (neu)", StateName: "Berlin"}
		if err := store.SaveConstituency(ctx, &updated); err != nil {
			t.Fatalf("SaveConstituency failed: %v", err)
		}
		got, _ := store.ByScopeAndListID(ctx, model.ScopeFederalDistrict, []string{"075"})
		if len(got) != 1 {
			t.Fatalf("Upsert duplicated the record: %d rows", len(got))
		}
		if got[0].Name != "Berlin-Mitte (neu)" {
			t.Errorf("Upsert not applied: %q", got[0].Name)
		}
	})
}
