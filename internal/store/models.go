// Package store contains the database layer for washplane.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Capacity controls how many jobs a business can work on at once.
type Capacity string

const (
	// CapacitySingle means one active job at a time, regardless of MaxConcurrentJobs.
	CapacitySingle Capacity = "SINGLE"
	// CapacityMultiple means up to MaxConcurrentJobs active jobs.
	CapacityMultiple Capacity = "MULTIPLE"
)

// JobStatus is one of the seven workflow states of a wash job.
// Values are stored and serialized exactly as these uppercase strings.
type JobStatus string

const (
	JobStatusReceived   JobStatus = "RECEIVED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusWashing    JobStatus = "WASHING"
	JobStatusDrying     JobStatus = "DRYING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusDelivered  JobStatus = "DELIVERED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// Business represents a tenant in the multi-tenant system.
// All operations must be scoped by the business ID.
type Business struct {
	ID                uuid.UUID
	Name              string
	Phone             string
	Capacity          Capacity
	MaxConcurrentJobs int

	// Per-tenant HTTP rate limiting. RateLimit is requests per second,
	// 0 means unlimited.
	RateLimit      int
	RateLimitBurst int

	CreatedAt time.Time
}

// Customer belongs to exactly one business.
type Customer struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Phone      string
	CreatedAt  time.Time
}

// Car belongs to a customer of a business.
type Car struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	CustomerID  uuid.UUID
	PlateNumber string
	Model       string
	CreatedAt   time.Time
}

// Service is a catalog entry owned by a business.
// Price is in the smallest currency unit (cents).
// MinTime and MaxTime are in minutes.
type Service struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Price      int64
	MinTime    int
	MaxTime    int
	IsActive   bool
	CreatedAt  time.Time
}

// Job is one wash transaction for one car of one customer of one business.
// TokenNumber and CreatedAt are immutable after creation; Status changes only
// through validated transitions, and ActualDelivery is set once on DELIVERED.
type Job struct {
	ID                uuid.UUID
	BusinessID        uuid.UUID
	CustomerID        uuid.UUID
	CarID             uuid.UUID
	TokenNumber       string
	Status            JobStatus
	Services          []JobService
	TotalPrice        int64
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// JobService is a snapshot of a catalog entry at job creation time.
// Catalog price changes after creation never alter an existing job.
type JobService struct {
	JobID     uuid.UUID
	ServiceID uuid.UUID
	Name      string
	Price     int64
	MaxTime   int
	Position  int
}
