package handlers

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"washplane/internal/engine"
	"washplane/internal/logger"
	"washplane/internal/store"
)

// mockTx is a no-op transaction for handler tests.
type mockTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *mockTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *mockTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *mockTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *mockTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *mockTx) Rollback() error {
	t.rolledBack = true
	return nil
}

// mockStore implements StoreFactory (and thereby the engine's interfaces)
// with canned responses.
type mockStore struct {
	beginTxErr error
	tx         mockTx
	pingErr    error

	business       *store.Business
	businessErr    error
	createdBizKeys []string

	customer    *store.Customer
	customerErr error
	car         *store.Car
	carErr      error

	services    []store.Service
	servicesErr error
	service     *store.Service
	serviceErr  error

	createJobErr  error
	createdJob    *store.Job
	job           *store.Job
	getJobErr     error
	jobs          []store.Job
	listJobsErr   error
	setStatusErr  error
	lastSetStatus *store.JobStatus
	lastDelivery  *time.Time

	activeCount    int64
	activeErr      error
	todayCount     int64
	todayErr       error
	lockErr        error
	lockedBusiness *uuid.UUID
}

func (m *mockStore) BeginTx(ctx context.Context) (store.Tx, error) {
	if m.beginTxErr != nil {
		return nil, m.beginTxErr
	}
	return &m.tx, nil
}

func (m *mockStore) Ping(ctx context.Context) error { return m.pingErr }

func (m *mockStore) CreateBusiness(ctx context.Context, business *store.Business, hashedKey string) error {
	m.createdBizKeys = append(m.createdBizKeys, hashedKey)
	return m.businessErr
}

func (m *mockStore) GetBusinessByID(ctx context.Context, id uuid.UUID) (*store.Business, error) {
	if m.businessErr != nil {
		return nil, m.businessErr
	}
	if m.business == nil || m.business.ID != id {
		return nil, store.ErrNotFound
	}
	return m.business, nil
}

func (m *mockStore) GetBusinessByAPIKeyHash(ctx context.Context, hash string) (*store.Business, error) {
	if m.business == nil {
		return nil, store.ErrNotFound
	}
	return m.business, nil
}

func (m *mockStore) CreateCustomer(ctx context.Context, customer *store.Customer) error {
	return m.customerErr
}

func (m *mockStore) GetCustomerByID(ctx context.Context, id uuid.UUID) (*store.Customer, error) {
	if m.customer == nil {
		return nil, store.ErrNotFound
	}
	return m.customer, m.customerErr
}

func (m *mockStore) CreateCar(ctx context.Context, car *store.Car) error { return m.carErr }

func (m *mockStore) GetCarByID(ctx context.Context, id uuid.UUID) (*store.Car, error) {
	if m.car == nil {
		return nil, store.ErrNotFound
	}
	return m.car, m.carErr
}

func (m *mockStore) CreateService(ctx context.Context, service *store.Service) error {
	return m.serviceErr
}

func (m *mockStore) GetServiceByID(ctx context.Context, id uuid.UUID) (*store.Service, error) {
	if m.service == nil {
		return nil, store.ErrNotFound
	}
	return m.service, m.serviceErr
}

func (m *mockStore) GetActiveServicesByIDs(ctx context.Context, businessID uuid.UUID, ids []uuid.UUID) ([]store.Service, error) {
	return m.services, m.servicesErr
}

func (m *mockStore) ListServices(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]store.Service, error) {
	return m.services, m.servicesErr
}

func (m *mockStore) UpdateService(ctx context.Context, service *store.Service) error {
	return m.serviceErr
}

func (m *mockStore) CreateJob(ctx context.Context, tx store.DBTransaction, job *store.Job) error {
	if m.createJobErr != nil {
		return m.createJobErr
	}
	m.createdJob = job
	return nil
}

func (m *mockStore) GetJobByID(ctx context.Context, id uuid.UUID) (*store.Job, error) {
	if m.getJobErr != nil {
		return nil, m.getJobErr
	}
	if m.job == nil {
		return nil, store.ErrNotFound
	}
	return m.job, nil
}

func (m *mockStore) ListJobs(ctx context.Context, businessID uuid.UUID, status *store.JobStatus) ([]store.Job, error) {
	return m.jobs, m.listJobsErr
}

func (m *mockStore) SetJobStatus(ctx context.Context, tx store.DBTransaction, jobID uuid.UUID, status store.JobStatus, actualDelivery *time.Time, updatedAt time.Time) error {
	if m.setStatusErr != nil {
		return m.setStatusErr
	}
	m.lastSetStatus = &status
	m.lastDelivery = actualDelivery
	return nil
}

func (m *mockStore) CountActiveJobs(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID) (int64, error) {
	return m.activeCount, m.activeErr
}

func (m *mockStore) CountJobsCreatedSince(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID, since time.Time) (int64, error) {
	return m.todayCount, m.todayErr
}

func (m *mockStore) CountAllActiveJobs(ctx context.Context) (int64, error) {
	return m.activeCount, m.activeErr
}

func (m *mockStore) LockBusiness(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID) error {
	if m.lockErr != nil {
		return m.lockErr
	}
	m.lockedBusiness = &businessID
	return nil
}

// newTestHandlers wires a Handlers around the mock with a real engine.
func newTestHandlers(m *mockStore) *Handlers {
	return New(m, engine.New(m, m), logger.New("test"), nil, nil)
}
