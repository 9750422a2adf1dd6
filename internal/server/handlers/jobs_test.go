package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"washplane/internal/server/middleware"
	"washplane/internal/store"
	"washplane/pkg/api"
)

func testBusiness(capacity store.Capacity, maxJobs int) *store.Business {
	return &store.Business{
		ID:                uuid.New(),
		Name:              "Sparkle Wash",
		Capacity:          capacity,
		MaxConcurrentJobs: maxJobs,
		CreatedAt:         time.Now().UTC(),
	}
}

func authedRequest(method, target string, body []byte, business *store.Business) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(middleware.NewContextWithBusiness(req.Context(), business))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestCreateJob(t *testing.T) {
	business := testBusiness(store.CapacityMultiple, 3)
	customerID := uuid.New()
	carID := uuid.New()
	svcID1 := uuid.New()
	svcID2 := uuid.New()

	newMock := func() *mockStore {
		return &mockStore{
			business: business,
			car: &store.Car{
				ID:         carID,
				BusinessID: business.ID,
				CustomerID: customerID,
			},
			services: []store.Service{
				{ID: svcID1, BusinessID: business.ID, Name: "Exterior Wash", Price: 1500, MaxTime: 20, IsActive: true},
				{ID: svcID2, BusinessID: business.ID, Name: "Interior Vacuum", Price: 1000, MaxTime: 25, IsActive: true},
			},
		}
	}

	body, _ := json.Marshal(api.CreateJobRequest{
		CustomerID: customerID.String(),
		CarID:      carID.String(),
		ServiceIDs: []string{svcID1.String(), svcID2.String()},
	})

	t.Run("admitted", func(t *testing.T) {
		mock := newMock()
		mock.activeCount = 2 // one slot left
		mock.todayCount = 4
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CreateJob(rec, authedRequest(http.MethodPost, "/jobs", body, business))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp api.JobResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if resp.Status != string(store.JobStatusReceived) {
			t.Errorf("expected status RECEIVED, got %s", resp.Status)
		}
		wantToken := fmt.Sprintf("%s-005", time.Now().Format("20060102"))
		if resp.TokenNumber != wantToken {
			t.Errorf("expected token %s, got %s", wantToken, resp.TokenNumber)
		}
		if resp.TotalPrice != 2500 {
			t.Errorf("expected total price 2500, got %d", resp.TotalPrice)
		}
		// ETA is the sum of max times, not the 60-minute default.
		wantETA := resp.CreatedAt.Add(45 * time.Minute)
		if !resp.EstimatedDelivery.Equal(wantETA) {
			t.Errorf("expected ETA %v, got %v", wantETA, resp.EstimatedDelivery)
		}
		if len(resp.Services) != 2 || resp.Services[0].Name != "Exterior Wash" {
			t.Errorf("unexpected service snapshot: %+v", resp.Services)
		}

		if mock.createdJob == nil {
			t.Fatal("expected job to be persisted")
		}
		if !mock.tx.committed {
			t.Error("expected transaction to be committed")
		}
		if mock.lockedBusiness == nil || *mock.lockedBusiness != business.ID {
			t.Error("expected per-business lock to be taken")
		}
	})

	t.Run("single bay occupied", func(t *testing.T) {
		single := testBusiness(store.CapacitySingle, 1)
		mock := newMock()
		mock.business = single
		mock.car.BusinessID = single.ID
		mock.activeCount = 1
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CreateJob(rec, authedRequest(http.MethodPost, "/jobs", body, single))

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", rec.Code)
		}
		if got := decodeError(t, rec).Error; got != "Another job is already in progress" {
			t.Errorf("unexpected rejection reason: %q", got)
		}
		if mock.createdJob != nil {
			t.Error("rejected job must not be persisted")
		}
	})

	t.Run("multiple at capacity", func(t *testing.T) {
		mock := newMock()
		mock.activeCount = 3
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CreateJob(rec, authedRequest(http.MethodPost, "/jobs", body, business))

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", rec.Code)
		}
		if got := decodeError(t, rec).Error; got != "Maximum capacity of 3 jobs reached" {
			t.Errorf("unexpected rejection reason: %q", got)
		}
	})

	t.Run("inactive service", func(t *testing.T) {
		mock := newMock()
		mock.services = mock.services[:1] // one of the requested IDs resolves
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CreateJob(rec, authedRequest(http.MethodPost, "/jobs", body, business))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("foreign car", func(t *testing.T) {
		mock := newMock()
		mock.car.BusinessID = uuid.New()
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CreateJob(rec, authedRequest(http.MethodPost, "/jobs", body, business))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("car belongs to another customer", func(t *testing.T) {
		mock := newMock()
		mock.car.CustomerID = uuid.New()
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CreateJob(rec, authedRequest(http.MethodPost, "/jobs", body, business))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		mock := newMock()
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CreateJob(rec, authedRequest(http.MethodPost, "/jobs", []byte("{"), business))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestUpdateJobStatus(t *testing.T) {
	business := testBusiness(store.CapacityMultiple, 3)
	jobID := uuid.New()

	newMock := func(current store.JobStatus) *mockStore {
		return &mockStore{
			business: business,
			job: &store.Job{
				ID:         jobID,
				BusinessID: business.ID,
				Status:     current,
			},
		}
	}

	statusRequest := func(status string) *http.Request {
		body, _ := json.Marshal(api.UpdateJobStatusRequest{Status: status})
		req := authedRequest(http.MethodPost, "/jobs/"+jobID.String()+"/status", body, business)
		req.SetPathValue("id", jobID.String())
		return req
	}

	t.Run("forward transition", func(t *testing.T) {
		mock := newMock(store.JobStatusWashing)
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("DRYING"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if mock.lastSetStatus == nil || *mock.lastSetStatus != store.JobStatusDrying {
			t.Errorf("expected DRYING to be persisted, got %v", mock.lastSetStatus)
		}
		if mock.lastDelivery != nil {
			t.Error("actual delivery must only be set on DELIVERED")
		}
	})

	t.Run("skip ahead", func(t *testing.T) {
		mock := newMock(store.JobStatusReceived)
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("COMPLETED"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("backward transition rejected", func(t *testing.T) {
		mock := newMock(store.JobStatusDrying)
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("WASHING"))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status 422, got %d", rec.Code)
		}
		if mock.lastSetStatus != nil {
			t.Error("rejected transition must not be persisted")
		}
	})

	t.Run("terminal job locked", func(t *testing.T) {
		mock := newMock(store.JobStatusDelivered)
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("DELIVERED"))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status 422, got %d", rec.Code)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		mock := newMock(store.JobStatusWashing)
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("POLISHING"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if !strings.Contains(decodeError(t, rec).Error, "POLISHING") {
			t.Error("error should name the offending status")
		}
	})

	t.Run("delivered stamps actual delivery", func(t *testing.T) {
		mock := newMock(store.JobStatusCompleted)
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("DELIVERED"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if mock.lastDelivery == nil {
			t.Fatal("expected actual delivery to be stamped")
		}
		var resp api.JobResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ActualDelivery == nil {
			t.Error("expected actual_delivery in response")
		}
	})

	t.Run("tenant isolation", func(t *testing.T) {
		mock := newMock(store.JobStatusWashing)
		mock.job.BusinessID = uuid.New() // job belongs to someone else
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.UpdateJobStatus(rec, statusRequest("DRYING"))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestCancelJob(t *testing.T) {
	business := testBusiness(store.CapacitySingle, 1)
	jobID := uuid.New()

	cancelRequest := func() *http.Request {
		req := authedRequest(http.MethodPost, "/jobs/"+jobID.String()+"/cancel", nil, business)
		req.SetPathValue("id", jobID.String())
		return req
	}

	t.Run("cancellable from any active state", func(t *testing.T) {
		for _, current := range []store.JobStatus{
			store.JobStatusReceived,
			store.JobStatusWashing,
			store.JobStatusCompleted,
		} {
			mock := &mockStore{
				business: business,
				job:      &store.Job{ID: jobID, BusinessID: business.ID, Status: current},
			}
			h := newTestHandlers(mock)

			rec := httptest.NewRecorder()
			h.CancelJob(rec, cancelRequest())

			if rec.Code != http.StatusOK {
				t.Errorf("%s: expected status 200, got %d", current, rec.Code)
			}
			if mock.lastSetStatus == nil || *mock.lastSetStatus != store.JobStatusCancelled {
				t.Errorf("%s: expected CANCELLED to be persisted", current)
			}
		}
	})

	t.Run("delivered job cannot be cancelled", func(t *testing.T) {
		mock := &mockStore{
			business: business,
			job:      &store.Job{ID: jobID, BusinessID: business.ID, Status: store.JobStatusDelivered},
		}
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.CancelJob(rec, cancelRequest())

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status 422, got %d", rec.Code)
		}
	})
}

func TestListJobs(t *testing.T) {
	business := testBusiness(store.CapacityMultiple, 5)

	t.Run("status filter", func(t *testing.T) {
		mock := &mockStore{
			business: business,
			jobs: []store.Job{
				{ID: uuid.New(), BusinessID: business.ID, Status: store.JobStatusWashing},
			},
		}
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.ListJobs(rec, authedRequest(http.MethodGet, "/jobs?status=WASHING", nil, business))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		var resp api.ListJobsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Jobs) != 1 {
			t.Errorf("expected 1 job, got %d", len(resp.Jobs))
		}
	})

	t.Run("bad status filter", func(t *testing.T) {
		mock := &mockStore{business: business}
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.ListJobs(rec, authedRequest(http.MethodGet, "/jobs?status=washingg", nil, business))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("empty list serializes as array", func(t *testing.T) {
		mock := &mockStore{business: business}
		h := newTestHandlers(mock)

		rec := httptest.NewRecorder()
		h.ListJobs(rec, authedRequest(http.MethodGet, "/jobs", nil, business))

		if !strings.Contains(rec.Body.String(), `"jobs":[]`) {
			t.Errorf("expected empty array, got %s", rec.Body.String())
		}
	})
}

func TestGetJob(t *testing.T) {
	business := testBusiness(store.CapacityMultiple, 5)
	jobID := uuid.New()

	mock := &mockStore{
		business: business,
		job: &store.Job{
			ID:          jobID,
			BusinessID:  business.ID,
			TokenNumber: "20250830-001",
			Status:      store.JobStatusWashing,
		},
	}
	h := newTestHandlers(mock)

	req := authedRequest(http.MethodGet, "/jobs/"+jobID.String(), nil, business)
	req.SetPathValue("id", jobID.String())

	rec := httptest.NewRecorder()
	h.GetJob(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp api.JobResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TokenNumber != "20250830-001" {
		t.Errorf("expected token 20250830-001, got %s", resp.TokenNumber)
	}
}
