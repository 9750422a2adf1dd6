package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"washplane/internal/auth"
	"washplane/pkg/api"
)

func TestCreateBusiness(t *testing.T) {
	tests := []struct {
		name       string
		req        api.CreateBusinessRequest
		wantStatus int
	}{
		{
			name:       "single bay",
			req:        api.CreateBusinessRequest{Name: "Quick Shine", Capacity: "SINGLE"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "multiple bays",
			req:        api.CreateBusinessRequest{Name: "Mega Wash", Capacity: "MULTIPLE", MaxConcurrentJobs: 5},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			req:        api.CreateBusinessRequest{Capacity: "SINGLE"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad capacity",
			req:        api.CreateBusinessRequest{Name: "Quick Shine", Capacity: "TRIPLE"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockStore{}
			h := newTestHandlers(mock)

			body, _ := json.Marshal(tt.req)
			rec := httptest.NewRecorder()
			h.CreateBusiness(rec, httptest.NewRequest(http.MethodPost, "/businesses", bytes.NewReader(body)))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var resp api.CreateBusinessResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !strings.HasPrefix(resp.ApiKey, auth.KeyPrefix) {
				t.Errorf("expected api key with %q prefix, got %q", auth.KeyPrefix, resp.ApiKey)
			}
			// Only the hash may be persisted.
			if len(mock.createdBizKeys) != 1 || mock.createdBizKeys[0] == resp.ApiKey {
				t.Error("store must receive the hashed key, not the raw one")
			}
			if mock.createdBizKeys[0] != auth.HashKey(resp.ApiKey) {
				t.Error("persisted hash does not match the issued key")
			}
		})
	}
}
