// Package api contains shared JSON request/response structs.
// This package is shared between the CLI and the server.
package api

import "time"

// CreateBusinessRequest is the request body for onboarding a tenant.
type CreateBusinessRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	// Capacity is SINGLE or MULTIPLE.
	Capacity string `json:"capacity"`
	// MaxConcurrentJobs applies only when Capacity is MULTIPLE.
	MaxConcurrentJobs int `json:"max_concurrent_jobs,omitempty"`
	// RateLimit is requests per second for this tenant; 0 means unlimited.
	RateLimit      int `json:"rate_limit,omitempty"`
	RateLimitBurst int `json:"rate_limit_burst,omitempty"`
}

// CreateBusinessResponse returns the raw API key exactly once.
type CreateBusinessResponse struct {
	ID     string `json:"business_id"`
	Name   string `json:"name"`
	ApiKey string `json:"api_key"`
}

// CreateCustomerRequest is the request body for registering a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCarRequest is the request body for registering a customer's car.
type CreateCarRequest struct {
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model,omitempty"`
}

// CarResponse represents a car in API responses.
type CarResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	PlateNumber string    `json:"plate_number"`
	Model       string    `json:"model,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateServiceRequest is the request body for adding a catalog entry.
// Price is in the smallest currency unit; times are minutes.
type CreateServiceRequest struct {
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	MinTime int    `json:"min_time,omitempty"`
	MaxTime int    `json:"max_time,omitempty"`
}

// UpdateServiceRequest carries partial catalog updates.
// Nil fields keep their current value.
type UpdateServiceRequest struct {
	Name     *string `json:"name,omitempty"`
	Price    *int64  `json:"price,omitempty"`
	MinTime  *int    `json:"min_time,omitempty"`
	MaxTime  *int    `json:"max_time,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ServiceResponse represents a catalog entry in API responses.
type ServiceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	MinTime   int       `json:"min_time"`
	MaxTime   int       `json:"max_time"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateJobRequest is the request body for starting a wash job.
type CreateJobRequest struct {
	CustomerID string   `json:"customer_id"`
	CarID      string   `json:"car_id"`
	ServiceIDs []string `json:"service_ids"`
}

// UpdateJobStatusRequest requests a status transition.
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// JobServiceResponse is one snapshotted service line of a job.
type JobServiceResponse struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	MaxTime   int    `json:"max_time"`
}

// JobResponse represents a job in API responses.
type JobResponse struct {
	ID                string               `json:"id"`
	CustomerID        string               `json:"customer_id"`
	CarID             string               `json:"car_id"`
	TokenNumber       string               `json:"token_number"`
	Status            string               `json:"status"`
	Services          []JobServiceResponse `json:"services,omitempty"`
	TotalPrice        int64                `json:"total_price"`
	EstimatedDelivery time.Time            `json:"estimated_delivery"`
	ActualDelivery    *time.Time           `json:"actual_delivery,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// ListJobsResponse is the response body for job listings.
type ListJobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

// ListServicesResponse is the response body for catalog listings.
type ListServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// JobEvent is pushed over the websocket job board whenever a job is created
// or changes status.
type JobEvent struct {
	Type string      `json:"type"` // "created" or "status_changed"
	Job  JobResponse `json:"job"`
}
