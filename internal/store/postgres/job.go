package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"washplane/internal/store"
)

// finishedStatuses are the statuses that do not occupy capacity.
var finishedStatuses = []string{
	string(store.JobStatusCompleted),
	string(store.JobStatusDelivered),
	string(store.JobStatusCancelled),
}

// CreateJob inserts a job row and its service snapshot rows.
// Must run inside a transaction that already holds the business lock,
// so the admission and token counts stay valid until commit.
func (s *Store) CreateJob(ctx context.Context, tx store.DBTransaction, job *store.Job) error {
	executor := s.getExecutor(tx)

	query := `
		INSERT INTO jobs (id, business_id, customer_id, car_id, token_number, status, total_price, estimated_delivery, actual_delivery, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := executor.ExecContext(ctx, query,
		job.ID,
		job.BusinessID,
		job.CustomerID,
		job.CarID,
		job.TokenNumber,
		job.Status,
		job.TotalPrice,
		job.EstimatedDelivery,
		job.ActualDelivery,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	for i, svc := range job.Services {
		_, err := executor.ExecContext(ctx, `
			INSERT INTO job_services (job_id, service_id, name, price, max_time, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, job.ID, svc.ServiceID, svc.Name, svc.Price, svc.MaxTime, i)
		if err != nil {
			return fmt.Errorf("insert job service %d: %w", i, err)
		}
	}
	return nil
}

func (s *Store) GetJobByID(ctx context.Context, id uuid.UUID) (*store.Job, error) {
	query := `
		SELECT id, business_id, customer_id, car_id, token_number, status, total_price, estimated_delivery, actual_delivery, created_at, updated_at
		FROM jobs WHERE id = $1
	`

	var job store.Job
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID,
		&job.BusinessID,
		&job.CustomerID,
		&job.CarID,
		&job.TokenNumber,
		&job.Status,
		&job.TotalPrice,
		&job.EstimatedDelivery,
		&job.ActualDelivery,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT job_id, service_id, name, price, max_time, position
		FROM job_services WHERE job_id = $1 ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query job services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var svc store.JobService
		if err := rows.Scan(&svc.JobID, &svc.ServiceID, &svc.Name, &svc.Price, &svc.MaxTime, &svc.Position); err != nil {
			return nil, err
		}
		job.Services = append(job.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &job, nil
}

func (s *Store) ListJobs(ctx context.Context, businessID uuid.UUID, status *store.JobStatus) ([]store.Job, error) {
	query := `
		SELECT id, business_id, customer_id, car_id, token_number, status, total_price, estimated_delivery, actual_delivery, created_at, updated_at
		FROM jobs
		WHERE business_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
	`

	var statusArg interface{}
	if status != nil {
		statusArg = string(*status)
	}

	rows, err := s.db.QueryContext(ctx, query, businessID, statusArg)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []store.Job
	for rows.Next() {
		var job store.Job
		if err := rows.Scan(
			&job.ID, &job.BusinessID, &job.CustomerID, &job.CarID, &job.TokenNumber, &job.Status,
			&job.TotalPrice, &job.EstimatedDelivery, &job.ActualDelivery, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *Store) SetJobStatus(ctx context.Context, tx store.DBTransaction, jobID uuid.UUID, status store.JobStatus, actualDelivery *time.Time, updatedAt time.Time) error {
	executor := s.getExecutor(tx)

	result, err := executor.ExecContext(ctx, `
		UPDATE jobs
		SET status = $1, actual_delivery = COALESCE($2, actual_delivery), updated_at = $3
		WHERE id = $4
	`, status, actualDelivery, updatedAt, jobID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountActiveJobs(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID) (int64, error) {
	executor := s.getExecutor(tx)

	var count int64
	err := executor.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM jobs
		WHERE business_id = $1 AND NOT (status = ANY($2))
	`, businessID, pq.Array(finishedStatuses)).Scan(&count)
	return count, err
}

func (s *Store) CountJobsCreatedSince(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID, since time.Time) (int64, error) {
	executor := s.getExecutor(tx)

	var count int64
	err := executor.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM jobs
		WHERE business_id = $1 AND created_at >= $2
	`, businessID, since).Scan(&count)
	return count, err
}

func (s *Store) CountAllActiveJobs(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM jobs WHERE NOT (status = ANY($1))
	`, pq.Array(finishedStatuses)).Scan(&count)
	return count, err
}

// LockBusiness takes a transaction-scoped advisory lock keyed on the business
// ID. Released automatically at commit or rollback.
func (s *Store) LockBusiness(ctx context.Context, tx store.DBTransaction, businessID uuid.UUID) error {
	executor := s.getExecutor(tx)

	_, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))", businessID)
	if err != nil {
		return fmt.Errorf("lock business %s: %w", businessID, err)
	}
	return nil
}
