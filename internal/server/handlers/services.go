package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"washplane/internal/server/middleware"
	"washplane/internal/store"
	"washplane/pkg/api"
)

// CreateService handles POST /services.
func (h *Handlers) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		h.httpError(w, "Name is required", http.StatusBadRequest)
		return
	}
	if req.Price < 0 || req.MinTime < 0 || req.MaxTime < 0 {
		h.httpError(w, "Price and times must not be negative", http.StatusBadRequest)
		return
	}

	service := &store.Service{
		ID:         uuid.New(),
		BusinessID: business.ID,
		Name:       req.Name,
		Price:      req.Price,
		MinTime:    req.MinTime,
		MaxTime:    req.MaxTime,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.store.CreateService(ctx, service); err != nil {
		h.httpError(w, "Failed to create service", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusCreated, toServiceResponse(service))
}

// ListServices handles GET /services. ?active=true filters to active entries.
func (h *Handlers) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	services, err := h.store.ListServices(ctx, business.ID, activeOnly)
	if err != nil {
		h.httpError(w, "Failed to list services", http.StatusInternalServerError)
		return
	}

	resp := api.ListServicesResponse{Services: []api.ServiceResponse{}}
	for i := range services {
		resp.Services = append(resp.Services, toServiceResponse(&services[i]))
	}
	h.respondJson(w, http.StatusOK, resp)
}

// UpdateService handles PATCH /services/{id}.
// Only the fields present in the body change; price updates never touch
// existing jobs, which keep their snapshot.
func (h *Handlers) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	serviceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.httpError(w, "Invalid service id", http.StatusBadRequest)
		return
	}

	service, err := h.store.GetServiceByID(ctx, serviceID)
	if err != nil || service.BusinessID != business.ID {
		h.httpError(w, "Service not found", http.StatusNotFound)
		return
	}

	var req api.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			h.httpError(w, "Price must not be negative", http.StatusBadRequest)
			return
		}
		service.Price = *req.Price
	}
	if req.MinTime != nil {
		service.MinTime = *req.MinTime
	}
	if req.MaxTime != nil {
		service.MaxTime = *req.MaxTime
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.store.UpdateService(ctx, service); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.httpError(w, "Service not found", http.StatusNotFound)
			return
		}
		h.httpError(w, "Failed to update service", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusOK, toServiceResponse(service))
}

func toServiceResponse(service *store.Service) api.ServiceResponse {
	return api.ServiceResponse{
		ID:        service.ID.String(),
		Name:      service.Name,
		Price:     service.Price,
		MinTime:   service.MinTime,
		MaxTime:   service.MaxTime,
		IsActive:  service.IsActive,
		CreatedAt: service.CreatedAt,
	}
}
