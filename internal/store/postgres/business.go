package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"washplane/internal/store"
)

func (s *Store) CreateBusiness(ctx context.Context, business *store.Business, hashedKey string) error {
	query := `
		INSERT INTO businesses (id, name, phone, capacity, max_concurrent_jobs, rate_limit, rate_limit_burst, api_key_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		business.ID,
		business.Name,
		business.Phone,
		business.Capacity,
		business.MaxConcurrentJobs,
		business.RateLimit,
		business.RateLimitBurst,
		hashedKey,
		business.CreatedAt,
	)
	return err
}

func (s *Store) GetBusinessByID(ctx context.Context, id uuid.UUID) (*store.Business, error) {
	query := `
		SELECT id, name, phone, capacity, max_concurrent_jobs, rate_limit, rate_limit_burst, created_at
		FROM businesses WHERE id = $1
	`
	return s.scanBusiness(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) GetBusinessByAPIKeyHash(ctx context.Context, hash string) (*store.Business, error) {
	query := `
		SELECT id, name, phone, capacity, max_concurrent_jobs, rate_limit, rate_limit_burst, created_at
		FROM businesses WHERE api_key_hash = $1
	`
	return s.scanBusiness(s.db.QueryRowContext(ctx, query, hash))
}

func (s *Store) scanBusiness(row *sql.Row) (*store.Business, error) {
	var b store.Business
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Phone,
		&b.Capacity,
		&b.MaxConcurrentJobs,
		&b.RateLimit,
		&b.RateLimitBurst,
		&b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
