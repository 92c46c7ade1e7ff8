package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"wahlpost/pkg/config"
	"wahlpost/pkg/model"
	"wahlpost/pkg/store"
)

// Geocoder resolves postal addresses to coordinates through a
// Nominatim-style search endpoint, with persistent caching and outbound
// rate limiting. Failed lookups are cached too, so a bad address never
// causes repeated calls to the external service.
type Geocoder struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      store.GeocodeCacheStore
}

// New creates a Geocoder. The limiter is injected so several resolver
// instances can share one outbound budget; see NewLimiter.
func New(cfg *config.GeocoderConfig, cache store.GeocodeCacheStore, limiter *rate.Limiter) *Geocoder {
	return &Geocoder{
		endpoint:   cfg.Endpoint,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout)},
		limiter:    limiter,
		cache:      cache,
	}
}

// NewLimiter returns an outbound limiter enforcing the minimum interval
// between requests to the geocoding service. Create it once per process and
// share it across all geocoder instances.
func NewLimiter(minInterval time.Duration) *rate.Limiter {
	if minInterval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(minInterval), 1)
}

// searchResult is one candidate match from the search endpoint. Nominatim
// returns coordinates as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode converts the address into coordinates. The cache is consulted
// first; a hit returns immediately without any network call or limiter
// wait. Failures are reported in the result, never as an error.
func (g *Geocoder) Geocode(ctx context.Context, addr model.Address) model.GeocodeResult {
	addr = addr.Normalized()
	key := addr.CacheKey()

	entry, err := g.cache.GetGeocode(ctx, key)
	if err != nil {
		slog.Error("Geocode cache read failed", "error", err)
	} else if entry != nil {
		slog.Debug("Geocode cache hit", "query", addr.Query(), "success", entry.Success)
		return entry.Result()
	}

	// Cache miss: wait out the courtesy interval before calling out.
	if err := g.limiter.Wait(ctx); err != nil {
		// Caller gave up before the request went out; nothing to cache.
		return model.GeocodeResult{Error: fmt.Sprintf("geocoding cancelled: %v", err)}
	}

	res := g.fetch(ctx, addr)

	if err := g.cache.PutGeocode(ctx, &model.GeocodeCacheEntry{
		Key:     key,
		Address: addr,
		Lat:     res.Lat,
		Lon:     res.Lon,
		Success: res.Success,
		Error:   res.Error,
	}); err != nil {
		slog.Error("Geocode cache write failed", "error", err)
	}

	return res
}

func (g *Geocoder) fetch(ctx context.Context, addr model.Address) model.GeocodeResult {
	q := url.Values{}
	q.Set("q", addr.Query())
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", strings.ToLower(addr.Country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return failure("invalid geocoding request: %v", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	slog.Debug("Geocoding request", "query", addr.Query())
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return failure("geocoding request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure("geocoding service returned HTTP %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return failure("failed to decode geocoding response: %v", err)
	}
	if len(results) == 0 {
		return failure("no results for address %q", addr.Query())
	}

	top := results[0]
	lat, latErr := strconv.ParseFloat(top.Lat, 64)
	lon, lonErr := strconv.ParseFloat(top.Lon, 64)
	if latErr != nil || lonErr != nil {
		return failure("unparseable coordinates in geocoding result %q/%q", top.Lat, top.Lon)
	}

	return model.GeocodeResult{Lat: lat, Lon: lon, Success: true}
}

func failure(format string, args ...any) model.GeocodeResult {
	return model.GeocodeResult{Error: fmt.Sprintf(format, args...)}
}
