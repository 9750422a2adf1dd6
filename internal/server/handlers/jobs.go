package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"washplane/internal/engine"
	"washplane/internal/server/middleware"
	"washplane/internal/store"
	"washplane/pkg/api"
)

// CreateJob handles POST /jobs.
// Admission, token numbering, and the service snapshot all happen inside one
// transaction holding the per-business lock, so two concurrent requests for
// the same business cannot both pass a single free slot or share a token.
func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.httpError(w, "Invalid customer id", http.StatusBadRequest)
		return
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		h.httpError(w, "Invalid car id", http.StatusBadRequest)
		return
	}
	serviceIDs := make([]uuid.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.httpError(w, "Invalid service id", http.StatusBadRequest)
			return
		}
		serviceIDs = append(serviceIDs, id)
	}

	car, err := h.store.GetCarByID(ctx, carID)
	if err != nil || car.BusinessID != business.ID {
		h.httpError(w, "Car not found", http.StatusNotFound)
		return
	}
	if car.CustomerID != customerID {
		h.httpError(w, "Car does not belong to customer", http.StatusBadRequest)
		return
	}

	services, err := h.store.GetActiveServicesByIDs(ctx, business.ID, serviceIDs)
	if err != nil {
		h.httpError(w, "Failed to load services", http.StatusInternalServerError)
		return
	}
	if len(services) != len(serviceIDs) {
		h.httpError(w, "Unknown or inactive service", http.StatusBadRequest)
		return
	}

	tx, err := h.store.BeginTx(ctx)
	if err != nil {
		h.httpError(w, "Internal database error", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback()

	if err := h.store.LockBusiness(ctx, tx, business.ID); err != nil {
		h.httpError(w, "Internal database error", http.StatusInternalServerError)
		return
	}

	decision, err := h.engine.CanAcceptNewJob(ctx, tx, business.ID)
	if err != nil {
		if errors.Is(err, engine.ErrBusinessNotFound) {
			h.httpError(w, "Business not found", http.StatusNotFound)
			return
		}
		h.httpError(w, "Failed to check capacity", http.StatusInternalServerError)
		return
	}
	if !decision.Admitted {
		if h.metrics != nil {
			h.metrics.JobsRejected.Add(ctx, 1)
		}
		h.httpError(w, decision.Reason, http.StatusConflict)
		return
	}

	now := time.Now()
	token, err := h.engine.GenerateToken(ctx, tx, business.ID, now)
	if err != nil {
		h.httpError(w, "Failed to assign token", http.StatusInternalServerError)
		return
	}

	job := &store.Job{
		ID:                uuid.New(),
		BusinessID:        business.ID,
		CustomerID:        customerID,
		CarID:             carID,
		TokenNumber:       token,
		Status:            store.JobStatusReceived,
		TotalPrice:        engine.TotalPrice(services),
		EstimatedDelivery: engine.ComputeETA(services, now),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for i, svc := range services {
		job.Services = append(job.Services, store.JobService{
			JobID:     job.ID,
			ServiceID: svc.ID,
			Name:      svc.Name,
			Price:     svc.Price,
			MaxTime:   svc.MaxTime,
			Position:  i,
		})
	}

	if err := h.store.CreateJob(ctx, tx, job); err != nil {
		h.httpError(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(); err != nil {
		h.httpError(w, "Failed to commit transaction", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.JobsCreated.Add(ctx, 1)
	}
	h.broadcastJob("created", job)

	h.respondJson(w, http.StatusCreated, toJobResponse(job))
}

// GetJob handles GET /jobs/{id}.
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.httpError(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.store.GetJobByID(ctx, jobID)
	if err != nil || job.BusinessID != business.ID {
		h.httpError(w, "Job not found", http.StatusNotFound)
		return
	}

	h.respondJson(w, http.StatusOK, toJobResponse(job))
}

// ListJobs handles GET /jobs. ?status=WASHING filters by status.
func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var statusFilter *store.JobStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := engine.ParseStatus(raw)
		if err != nil {
			h.httpError(w, err.Error(), http.StatusBadRequest)
			return
		}
		statusFilter = &status
	}

	jobs, err := h.store.ListJobs(ctx, business.ID, statusFilter)
	if err != nil {
		h.httpError(w, "Failed to list jobs", http.StatusInternalServerError)
		return
	}

	resp := api.ListJobsResponse{Jobs: []api.JobResponse{}}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, toJobResponse(&jobs[i]))
	}
	h.respondJson(w, http.StatusOK, resp)
}

// UpdateJobStatus handles POST /jobs/{id}/status.
// The transition is validated against the state machine before anything is
// written; an illegal request leaves the job untouched.
func (h *Handlers) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateJobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	target, err := engine.ParseStatus(req.Status)
	if err != nil {
		h.httpError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.transitionJob(w, r, target)
}

// CancelJob handles POST /jobs/{id}/cancel.
// Cancellation is a terminal transition, not a deletion.
func (h *Handlers) CancelJob(w http.ResponseWriter, r *http.Request) {
	h.transitionJob(w, r, store.JobStatusCancelled)
}

func (h *Handlers) transitionJob(w http.ResponseWriter, r *http.Request, target store.JobStatus) {
	ctx := r.Context()

	business, ok := middleware.BusinessFromContext(ctx)
	if !ok {
		h.httpError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.httpError(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.store.GetJobByID(ctx, jobID)
	if err != nil || job.BusinessID != business.ID {
		h.httpError(w, "Job not found", http.StatusNotFound)
		return
	}

	if err := engine.CheckTransition(job.Status, target); err != nil {
		h.httpError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	now := time.Now()
	var actualDelivery *time.Time
	if target == store.JobStatusDelivered {
		actualDelivery = &now
	}

	if err := h.store.SetJobStatus(ctx, nil, jobID, target, actualDelivery, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.httpError(w, "Job not found", http.StatusNotFound)
			return
		}
		h.httpError(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	job.Status = target
	job.UpdatedAt = now
	if actualDelivery != nil {
		job.ActualDelivery = actualDelivery
	}

	if h.metrics != nil {
		h.metrics.StatusChanges.Add(ctx, 1)
	}
	h.broadcastJob("status_changed", job)

	h.respondJson(w, http.StatusOK, toJobResponse(job))
}
