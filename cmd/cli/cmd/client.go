package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"washplane/pkg/api"
)

// WashClient handles API calls to the washplane server.
type WashClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewWashClient creates a new client with the given base URL and token.
func NewWashClient(baseURL, token string) *WashClient {
	return &WashClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

func (c *WashClient) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	httpReq.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		message := string(respBody)
		var apiErr api.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// CreateBusiness sends POST /businesses to onboard a new tenant.
// The token must be the platform admin secret, not a business API key.
func (c *WashClient) CreateBusiness(req api.CreateBusinessRequest) (*api.CreateBusinessResponse, error) {
	var result api.CreateBusinessResponse
	if err := c.do(http.MethodPost, "/businesses", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateJob sends POST /jobs to start a new wash job.
func (c *WashClient) CreateJob(req api.CreateJobRequest) (*api.JobResponse, error) {
	var result api.JobResponse
	if err := c.do(http.MethodPost, "/jobs", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetJob sends GET /jobs/{id} to retrieve job details.
func (c *WashClient) GetJob(jobID string) (*api.JobResponse, error) {
	var result api.JobResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/jobs/%s", jobID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateJobStatus sends POST /jobs/{id}/status to move a job forward.
func (c *WashClient) UpdateJobStatus(jobID, status string) (*api.JobResponse, error) {
	var result api.JobResponse
	req := api.UpdateJobStatusRequest{Status: status}
	if err := c.do(http.MethodPost, fmt.Sprintf("/jobs/%s/status", jobID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelJob sends POST /jobs/{id}/cancel.
func (c *WashClient) CancelJob(jobID string) (*api.JobResponse, error) {
	var result api.JobResponse
	if err := c.do(http.MethodPost, fmt.Sprintf("/jobs/%s/cancel", jobID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListServices sends GET /services to retrieve the service catalog.
func (c *WashClient) ListServices(activeOnly bool) ([]api.ServiceResponse, error) {
	path := "/services"
	if activeOnly {
		path += "?active=true"
	}
	var result api.ListServicesResponse
	if err := c.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Services, nil
}
