package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"wahlpost/pkg/config"
	"wahlpost/pkg/model"
)

// memCache is an in-memory GeocodeCacheStore for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string]*model.GeocodeCacheEntry
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*model.GeocodeCacheEntry)}
}

func (m *memCache) GetGeocode(_ context.Context, key string) (*model.GeocodeCacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[key], nil
}

func (m *memCache) PutGeocode(_ context.Context, e *model.GeocodeCacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Key] = e
	return nil
}

func newTestGeocoder(endpoint string, cache *memCache) *Geocoder {
	cfg := &config.GeocoderConfig{
		Endpoint:  endpoint,
		UserAgent: "wahlpost-test/1.0",
		Timeout:   config.Duration(2 * time.Second),
	}
	return New(cfg, cache, NewLimiter(0))
}

func TestGeocodeCacheMissThenHit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("User-Agent") != "wahlpost-test/1.0" {
			t.Errorf("Missing identifying User-Agent, got %q", r.Header.Get("User-Agent"))
		}
		if q := r.URL.Query().Get("countrycodes"); q != "de" {
			t.Errorf("Expected countrycodes=de, got %q", q)
		}
		w.Write([]byte(`[{"lat": "52.5186", "lon": "13.3761", "display_name": "Reichstag"}]`))
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL, newMemCache())
	addr := model.Address{Street: "Platz der Republik 1", PostalCode: "11011", City: "Berlin"}

	res := g.Geocode(context.Background(), addr)
	if !res.Success {
		t.Fatalf("Expected success, got %+v", res)
	}
	if res.Lat != 52.5186 || res.Lon != 13.3761 {
		t.Errorf("Coordinate mismatch: %+v", res)
	}
	if calls != 1 {
		t.Fatalf("Expected exactly 1 outbound call, got %d", calls)
	}

	// Second call for the identical address: same result, zero network calls
	res2 := g.Geocode(context.Background(), addr)
	if res2 != res {
		t.Errorf("Cache hit returned different result: %+v vs %+v", res2, res)
	}
	if calls != 1 {
		t.Errorf("Cache hit made an outbound call (total %d)", calls)
	}
}

func TestGeocodeFailureIsCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL, newMemCache())
	addr := model.Address{Street: "Nowhere 1", City: "Atlantis"}

	res := g.Geocode(context.Background(), addr)
	if res.Success {
		t.Fatal("Expected failure for empty result set")
	}
	if res.Error == "" {
		t.Error("Expected a human-readable error message")
	}

	// Repeat returns the cached failure without a new outbound call
	res2 := g.Geocode(context.Background(), addr)
	if res2.Success {
		t.Error("Cached failure turned into success")
	}
	if calls != 1 {
		t.Errorf("Cached failure was retried (calls=%d)", calls)
	}
}

func TestGeocodeServerErrorIsFailureNotPanic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL, newMemCache())
	res := g.Geocode(context.Background(), model.Address{City: "Berlin"})
	if res.Success {
		t.Fatal("Expected failure on HTTP 503")
	}
}

func TestGeocodeEnforcesMinInterval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"lat": "50.0", "lon": "8.0"}]`))
	}))
	defer srv.Close()

	cfg := &config.GeocoderConfig{
		Endpoint:  srv.URL,
		UserAgent: "wahlpost-test/1.0",
		Timeout:   config.Duration(2 * time.Second),
	}
	g := New(cfg, newMemCache(), NewLimiter(150*time.Millisecond))

	start := time.Now()
	g.Geocode(context.Background(), model.Address{City: "Frankfurt"})
	g.Geocode(context.Background(), model.Address{City: "Mainz"})
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("Second distinct request went out after %v, expected >=150ms wait", elapsed)
	}

	// A cache hit must not wait on the limiter
	start = time.Now()
	g.Geocode(context.Background(), model.Address{City: "Frankfurt"})
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Cache hit waited on the limiter (%v)", elapsed)
	}
}
