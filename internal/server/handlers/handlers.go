// Package handlers contains HTTP handlers for the washplane API.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"washplane/internal/engine"
	"washplane/internal/observability"
	"washplane/internal/server/ws"
	"washplane/internal/store"
	"washplane/pkg/api"
)

// StoreFactory combines the interfaces needed for the server to function.
type StoreFactory interface {
	BeginTx(ctx context.Context) (store.Tx, error)
	Ping(ctx context.Context) error
	store.BusinessStore
	store.CustomerStore
	store.ServiceStore
	store.JobStore
}

// Handlers holds all HTTP handlers and their dependencies.
type Handlers struct {
	store   StoreFactory
	engine  *engine.Engine
	log     *slog.Logger
	hub     *ws.Hub
	metrics *observability.ServerMetrics
}

// New creates a new Handlers instance. hub and metrics may be nil in tests.
func New(s StoreFactory, e *engine.Engine, log *slog.Logger, hub *ws.Hub, metrics *observability.ServerMetrics) *Handlers {
	return &Handlers{store: s, engine: e, log: log, hub: hub, metrics: metrics}
}

// A helper function to write standard JSON responses.
func (h *Handlers) respondJson(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// A helper function to return consistent error messages.
func (h *Handlers) httpError(w http.ResponseWriter, message string, code int) {
	h.respondJson(w, code, api.ErrorResponse{
		Error: message,
		Code:  strconv.Itoa(code),
	})
}

func (h *Handlers) broadcastJob(eventType string, job *store.Job) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(job.BusinessID, api.JobEvent{Type: eventType, Job: toJobResponse(job)})
}

func toJobResponse(job *store.Job) api.JobResponse {
	resp := api.JobResponse{
		ID:                job.ID.String(),
		CustomerID:        job.CustomerID.String(),
		CarID:             job.CarID.String(),
		TokenNumber:       job.TokenNumber,
		Status:            string(job.Status),
		TotalPrice:        job.TotalPrice,
		EstimatedDelivery: job.EstimatedDelivery,
		ActualDelivery:    job.ActualDelivery,
		CreatedAt:         job.CreatedAt,
		UpdatedAt:         job.UpdatedAt,
	}
	for _, svc := range job.Services {
		resp.Services = append(resp.Services, api.JobServiceResponse{
			ServiceID: svc.ServiceID.String(),
			Name:      svc.Name,
			Price:     svc.Price,
			MaxTime:   svc.MaxTime,
		})
	}
	return resp
}
