package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"wahlpost/pkg/model"
	"wahlpost/pkg/resolve"
)

// AddressResolver is the resolver surface the API depends on.
type AddressResolver interface {
	Resolve(ctx context.Context, addr model.Address) (*resolve.Result, error)
	ResolveCoarse(ctx context.Context, q resolve.CoarseQuery) ([]model.Constituency, error)
}

// ResolveHandler serves address resolution requests.
type ResolveHandler struct {
	resolver AddressResolver
}

// NewResolveHandler creates a ResolveHandler.
func NewResolveHandler(r AddressResolver) *ResolveHandler {
	return &ResolveHandler{resolver: r}
}

// HandleResolve resolves a full street address. An address that cannot be
// resolved yields HTTP 200 with an empty constituency list; the frontend
// degrades to federal-at-large suggestions rather than showing an error.
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	addr := model.Address{
		Street:     q.Get("street"),
		PostalCode: q.Get("postal_code"),
		City:       q.Get("city"),
		Country:    q.Get("country"),
	}

	if addr.Street == "" && addr.PostalCode == "" && addr.City == "" {
		http.Error(w, "at least one of street, postal_code, city is required", http.StatusBadRequest)
		return
	}

	res, err := h.resolver.Resolve(r.Context(), addr)
	if err != nil {
		slog.Error("Resolution failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, res)
}

// HandleCoarse serves the degraded postal-code/state lookup used when no
// full address is available.
func (h *ResolveHandler) HandleCoarse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coarse := resolve.CoarseQuery{
		PostalCode: q.Get("postal_code"),
		City:       q.Get("city"),
		StateName:  q.Get("state"),
	}

	found, err := h.resolver.ResolveCoarse(r.Context(), coarse)
	if err != nil {
		slog.Error("Coarse resolution failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"constituencies": found})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
