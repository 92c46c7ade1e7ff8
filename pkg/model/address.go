package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Address is a free-form postal address to be resolved.
type Address struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// Normalized returns the address with whitespace trimmed and the country
// defaulted to "DE".
func (a Address) Normalized() Address {
	n := Address{
		Street:     strings.TrimSpace(a.Street),
		PostalCode: strings.TrimSpace(a.PostalCode),
		City:       strings.TrimSpace(a.City),
		Country:    strings.ToUpper(strings.TrimSpace(a.Country)),
	}
	if n.Country == "" {
		n.Country = "DE"
	}
	return n
}

// Query returns the single-line query string sent to the geocoding service.
// The country is always appended for disambiguation.
func (a Address) Query() string {
	n := a.Normalized()
	parts := make([]string, 0, 4)
	for _, p := range []string{n.Street, n.PostalCode, n.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, n.Country)
	return strings.Join(parts, ", ")
}

// CacheKey returns the SHA-256 hash identifying this address in the
// geocode cache. Case differences in street and city do not produce
// distinct keys.
func (a Address) CacheKey() string {
	n := a.Normalized()
	h := sha256.Sum256([]byte(strings.Join([]string{
		strings.ToLower(n.Street),
		n.PostalCode,
		strings.ToLower(n.City),
		n.Country,
	}, "\x00")))
	return hex.EncodeToString(h[:])
}

// GeocodeResult is the outcome of a geocode attempt. Failures are reported
// here, never raised to the caller.
type GeocodeResult struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// GeocodeCacheEntry is one persisted geocode attempt, successful or not.
// Failed lookups are cached too, so an address that cannot be geocoded is
// not retried against the external service.
type GeocodeCacheEntry struct {
	Key       string
	Address   Address
	Lat       float64
	Lon       float64
	Success   bool
	Error     string
	UpdatedAt time.Time
}

// Result converts the cached entry back into a geocode result.
func (e *GeocodeCacheEntry) Result() GeocodeResult {
	return GeocodeResult{Lat: e.Lat, Lon: e.Lon, Success: e.Success, Error: e.Error}
}
