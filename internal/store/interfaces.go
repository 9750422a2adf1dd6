package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookup methods when no row matches.
// Implementations map their driver-specific "no rows" error to this one.
var ErrNotFound = errors.New("not found")

// DBTransaction defines the methods shared by *sql.DB and *sql.Tx
// This allows us to pass either a connection pool or an active transaction to the repository methods.
type DBTransaction interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Tx interface {
	DBTransaction
	Commit() error
	Rollback() error
}

// BusinessStore handles tenant records and API-key authentication lookups.
type BusinessStore interface {
	// CreateBusiness inserts a new business with the hash of its API key.
	CreateBusiness(ctx context.Context, business *Business, hashedKey string) error

	// GetBusinessByID returns a business by its ID.
	GetBusinessByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// GetBusinessByAPIKeyHash returns a business by its API key hash.
	GetBusinessByAPIKeyHash(ctx context.Context, hash string) (*Business, error)
}

// CustomerStore handles customers and their cars.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer *Customer) error
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	CreateCar(ctx context.Context, car *Car) error
	GetCarByID(ctx context.Context, id uuid.UUID) (*Car, error)
}

// ServiceStore handles the per-business service catalog.
type ServiceStore interface {
	CreateService(ctx context.Context, service *Service) error
	GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error)

	// GetActiveServicesByIDs returns the active catalog entries among ids,
	// scoped to businessID, in the order of ids.
	GetActiveServicesByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]Service, error)

	ListServices(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]Service, error)
	UpdateService(ctx context.Context, service *Service) error
}

// JobStore handles wash jobs and the counts the lifecycle engine decides on.
type JobStore interface {
	// CreateJob inserts a job together with its service snapshot rows.
	CreateJob(ctx context.Context, tx DBTransaction, job *Job) error

	// GetJobByID returns a job with its service snapshot.
	GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// ListJobs returns jobs for a business, newest first, optionally
	// filtered by status. Service snapshots are not loaded.
	ListJobs(ctx context.Context, businessID uuid.UUID, status *JobStatus) ([]Job, error)

	// SetJobStatus updates a job's status. actualDelivery is non-nil only
	// when the job enters DELIVERED.
	SetJobStatus(ctx context.Context, tx DBTransaction, jobID uuid.UUID, status JobStatus, actualDelivery *time.Time, updatedAt time.Time) error

	// CountActiveJobs returns the number of jobs for a business whose status
	// is not COMPLETED, DELIVERED, or CANCELLED.
	CountActiveJobs(ctx context.Context, tx DBTransaction, businessID uuid.UUID) (int64, error)

	// CountJobsCreatedSince returns the number of jobs a business created at
	// or after the given instant.
	CountJobsCreatedSince(ctx context.Context, tx DBTransaction, businessID uuid.UUID, since time.Time) (int64, error)

	// CountAllActiveJobs returns the number of active jobs across all businesses.
	CountAllActiveJobs(ctx context.Context) (int64, error)

	// LockBusiness takes a transaction-scoped advisory lock on the business,
	// serializing count-then-insert job creation per tenant.
	LockBusiness(ctx context.Context, tx DBTransaction, businessID uuid.UUID) error
}
