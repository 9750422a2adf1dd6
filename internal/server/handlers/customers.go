package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"washplane/internal/server/middleware"
	"washplane/internal/store"
	"washplane/pkg/api"
)

// CreateCustomer handles POST /customers.
func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		h.httpError(w, "Name is required", http.StatusBadRequest)
		return
	}

	customer := &store.Customer{
		ID:         uuid.New(),
		BusinessID: business.ID,
		Name:       req.Name,
		Phone:      req.Phone,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.store.CreateCustomer(ctx, customer); err != nil {
		h.httpError(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusCreated, api.CustomerResponse{
		ID:        customer.ID.String(),
		Name:      customer.Name,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	})
}

// CreateCar handles POST /customers/{id}/cars.
func (h *Handlers) CreateCar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	customerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.httpError(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	customer, err := h.store.GetCustomerByID(ctx, customerID)
	if err != nil || customer.BusinessID != business.ID {
		h.httpError(w, "Customer not found", http.StatusNotFound)
		return
	}

	var req api.CreateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlateNumber == "" {
		h.httpError(w, "Plate number is required", http.StatusBadRequest)
		return
	}

	car := &store.Car{
		ID:          uuid.New(),
		BusinessID:  business.ID,
		CustomerID:  customerID,
		PlateNumber: req.PlateNumber,
		Model:       req.Model,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.store.CreateCar(ctx, car); err != nil {
		h.httpError(w, "Failed to create car", http.StatusInternalServerError)
		return
	}

	h.respondJson(w, http.StatusCreated, api.CarResponse{
		ID:          car.ID.String(),
		CustomerID:  customerID.String(),
		PlateNumber: car.PlateNumber,
		Model:       car.Model,
		CreatedAt:   car.CreatedAt,
	})
}
