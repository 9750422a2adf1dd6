package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"washplane/internal/auth"
	"washplane/internal/store"
	"washplane/pkg/api"
)

// CreateBusiness handles POST /businesses (platform operator only).
// It generates a new API key, hashes it for storage, and returns the raw key ONCE.
func (h *Handlers) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		h.httpError(w, "Name is required", http.StatusBadRequest)
		return
	}

	capacity := store.Capacity(req.Capacity)
	switch capacity {
	case store.CapacitySingle, store.CapacityMultiple:
	default:
		h.httpError(w, "Capacity must be SINGLE or MULTIPLE", http.StatusBadRequest)
		return
	}

	maxConcurrent := req.MaxConcurrentJobs
	if capacity == store.CapacitySingle || maxConcurrent < 1 {
		maxConcurrent = 1
	}

	apiKey, err := auth.NewKey()
	if err != nil {
		h.httpError(w, "Entropy failure", http.StatusInternalServerError)
		return
	}

	business := &store.Business{
		ID:                uuid.New(),
		Name:              req.Name,
		Phone:             req.Phone,
		Capacity:          capacity,
		MaxConcurrentJobs: maxConcurrent,
		RateLimit:         req.RateLimit,
		RateLimitBurst:    req.RateLimitBurst,
		CreatedAt:         time.Now().UTC(),
	}

	if err := h.store.CreateBusiness(ctx, business, auth.HashKey(apiKey)); err != nil {
		h.httpError(w, "Failed to create business", http.StatusInternalServerError)
		return
	}

	// Return the raw key (this is the only time the operator sees it)
	resp := api.CreateBusinessResponse{
		ID:     business.ID.String(),
		Name:   business.Name,
		ApiKey: apiKey,
	}
	h.respondJson(w, http.StatusCreated, resp)
}
